package validation

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/yashrajoria/streetwear-backend/models"
)

var (
	indianPhoneRe = regexp.MustCompile(`^(\+91[\-\s]?)?[6-9]\d{9}$`)
	pincodeRe     = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	slugRe        = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// New returns a validator with the store's custom tags and struct-level rules
// registered. Field names in errors use the json tag.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("in_phone", func(fl validatorv10.FieldLevel) bool {
		return indianPhoneRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pincode", func(fl validatorv10.FieldLevel) bool {
		return pincodeRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validatorv10.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("size", func(fl validatorv10.FieldLevel) bool {
		return models.IsValidSize(fl.Field().String())
	})
	_ = v.RegisterValidation("order_status", func(fl validatorv10.FieldLevel) bool {
		return models.OrderStatus(fl.Field().String()).Valid()
	})

	v.RegisterStructValidation(createOrderStructValidation, models.CreateOrderRequest{})
	v.RegisterStructValidation(productStructValidation, models.ProductInput{})
	v.RegisterStructValidation(announcementStructValidation, models.AnnouncementInput{})

	return v
}

// createOrderStructValidation verifies total_amount equals the sum of
// price*quantity over the items, compared in paise.
func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(models.CreateOrderRequest)
	if len(req.Items) == 0 || req.TotalAmount <= 0 {
		return
	}

	if ToPaise(ItemsTotal(req.Items)) != ToPaise(req.TotalAmount) {
		sl.ReportError(req.TotalAmount, "total_amount", "TotalAmount", "total_matches_items", "")
	}
}

func productStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(models.ProductInput)
	for color, urls := range req.ColorImages {
		if strings.TrimSpace(color) == "" || len(urls) < models.MinProductImages || len(urls) > models.MaxProductImages {
			sl.ReportError(req.ColorImages, "color_images", "ColorImages", "color_images", color)
			return
		}
		for _, u := range urls {
			if err := sl.Validator().Var(u, "required,url"); err != nil {
				sl.ReportError(req.ColorImages, "color_images", "ColorImages", "color_images", color)
				return
			}
		}
	}
}

func announcementStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(models.AnnouncementInput)
	if req.LinkText != "" && req.LinkURL == "" {
		sl.ReportError(req.LinkURL, "link_url", "LinkURL", "required_with", "link_text")
	}
}

// ItemsTotal sums price*quantity over checkout lines.
func ItemsTotal(items []models.OrderItemInput) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// ToPaise converts an amount in rupees to integer paise.
func ToPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// message renders a human readable message for one failed field.
func message(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "required_with":
		return fmt.Sprintf("is required when %s is set", fe.Param())
	case "email":
		return "must be a valid email address"
	case "in_phone":
		return "must be a valid 10 digit mobile number"
	case "pincode":
		return "must be a valid 6 digit pincode"
	case "slug":
		return "may contain only lowercase letters, digits and hyphens"
	case "size":
		return "must be one of XS, S, M, L, XL, XXL"
	case "order_status":
		return "must be a known order status"
	case "uuid":
		return "must be a valid id"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "unique":
		return "must not contain duplicates"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gtefield":
		return "must not be lower than price"
	case "min", "max":
		return boundMessage(fe)
	case "total_matches_items":
		return "must equal the sum of item price times quantity"
	case "color_images":
		return fmt.Sprintf("each color needs between %d and %d image URLs", models.MinProductImages, models.MaxProductImages)
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func boundMessage(fe validatorv10.FieldError) string {
	word := "at least"
	if fe.Tag() == "max" {
		word = "at most"
	}
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must contain %s %s items", word, fe.Param())
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters", word, fe.Param())
	default:
		return fmt.Sprintf("must be %s %s", word, fe.Param())
	}
}
