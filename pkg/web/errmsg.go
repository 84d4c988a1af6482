package web

import "github.com/go-playground/validator/v10"

// GetErrorMsg builds a readable message for the first failed binding rule.
func GetErrorMsg(ve validator.ValidationErrors) string {
	field := ve[0]
	return field.Field() + ruleMsg(field)
}

func ruleMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "email":
		return " must be a valid email address"
	case "min":
		return " must be greater or equal to " + fe.Param()
	case "max":
		return " must be less or equal to " + fe.Param()
	case "gt":
		return " must be greater than " + fe.Param()
	case "oneof":
		return " must be one of " + fe.Param()
	}

	return " is invalid"
}
