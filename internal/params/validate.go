package params

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report struct fields by their JSON names so issue locations match the wire.
	v.RegisterTagNameFunc(jsonName)
	return v
}

// describe turns a validator failure into an issue type and message.
func describe(fe validator.FieldError) (string, string) {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "missing", "Field required"
	case "min":
		if isString {
			return "string_too_short", fmt.Sprintf("String should have at least %s", characters(fe.Param()))
		}
		return "greater_than_equal", "Input should be greater than or equal to " + fe.Param()
	case "max":
		if isString {
			return "string_too_long", fmt.Sprintf("String should have at most %s", characters(fe.Param()))
		}
		return "less_than_equal", "Input should be less than or equal to " + fe.Param()
	case "gte":
		return "greater_than_equal", "Input should be greater than or equal to " + fe.Param()
	case "lte":
		return "less_than_equal", "Input should be less than or equal to " + fe.Param()
	case "gt":
		return "greater_than", "Input should be greater than " + fe.Param()
	case "lt":
		return "less_than", "Input should be less than " + fe.Param()
	case "oneof":
		return "enum", "Input should be one of: " + fe.Param()
	default:
		if fe.Param() != "" {
			return fe.Tag(), fmt.Sprintf("Value failed %s=%s", fe.Tag(), fe.Param())
		}
		return fe.Tag(), "Value failed " + fe.Tag()
	}
}

func characters(n string) string {
	if n == "1" {
		return "1 character"
	}
	return n + " characters"
}

// checkVar runs a single validator tag against v and returns the first
// failure, if any.
func checkVar(v any, tag string) (validator.FieldError, bool) {
	err := validate.Var(v, tag)
	if err == nil {
		return nil, false
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return verrs[0], true
	}
	return nil, false
}
