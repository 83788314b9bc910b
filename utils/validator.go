package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers custom validation rules used by the
// binding tags across handlers.
func RegisterCustomValidations(v *validator.Validate) {
	v.RegisterValidation("otpcode", validateOTPCode)
}

// validateOTPCode checks for exactly six ASCII digits.
func validateOTPCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func TranslateValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		var messages []string
		for _, fe := range ve {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				messages = append(messages, field+" is required")
			case "email":
				messages = append(messages, "invalid email format")
			case "min":
				messages = append(messages, field+" must be at least "+fe.Param()+" characters")
			case "max":
				messages = append(messages, field+" must be at most "+fe.Param()+" characters")
			case "oneof":
				messages = append(messages, field+" must be one of: "+fe.Param())
			case "gt":
				messages = append(messages, field+" must be greater than "+fe.Param())
			case "uuid":
				messages = append(messages, field+" must be a valid uuid")
			case "otpcode":
				messages = append(messages, field+" must be a 6-digit code")
			default:
				messages = append(messages, field+" is invalid")
			}
		}
		return strings.Join(messages, ", ")
	}
	return err.Error()
}
