package validation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
)

// BindJSON decodes the request body into out and validates it. On failure it
// returns a 400 error carrying field-level detail, ready for apperrors.Abort.
func BindJSON(c *gin.Context, out interface{}, v *validatorv10.Validate) *apperrors.Error {
	if err := c.ShouldBindJSON(out); err != nil {
		appErr := apperrors.New(http.StatusBadRequest, "Invalid request body", err)
		appErr.Details = map[string]string{"body": err.Error()}
		return appErr
	}
	return Struct(out, v)
}

// Struct validates an already decoded value.
func Struct(out interface{}, v *validatorv10.Validate) *apperrors.Error {
	if err := v.Struct(out); err != nil {
		return apperrors.Validation(FieldErrors(err))
	}
	return nil
}

// FieldErrors flattens validator errors into json-path -> message.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldPath(fe.Namespace())] = message(fe)
		}
		return out
	}
	out["body"] = err.Error()
	return out
}

// fieldPath strips the root struct name: "CreateOrderRequest.items[0].price" -> "items[0].price".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
