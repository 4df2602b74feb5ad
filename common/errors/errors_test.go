package errors_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestWithErr_DoesNotMutateSentinel(t *testing.T) {
	wrapped := apperrors.ErrInternalServer.WithErr(fmt.Errorf("boom"))

	assert.Nil(t, apperrors.ErrInternalServer.Err)
	assert.EqualError(t, wrapped, "Internal server error: boom")
	assert.ErrorIs(t, wrapped, wrapped.Err)
}

func TestFrom_PassesThroughMessage(t *testing.T) {
	appErr := apperrors.From(fmt.Errorf("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "connection refused", appErr.Message)

	typed := apperrors.From(fmt.Errorf("wrap: %w", apperrors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, typed.Code)
}

func TestErrorMiddleware_RendersLastError(t *testing.T) {
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperrors.Validation(map[string]string{"email": "must be a valid email address"}))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, map[string]interface{}{"email": "must be a valid email address"}, body["details"])
}

func TestAbort_WritesGenericUnauthorized(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		apperrors.Abort(c, apperrors.ErrUnauthorized)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}
