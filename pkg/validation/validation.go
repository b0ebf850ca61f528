package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError flattens validator.ValidationErrors into one
// user-facing message.
func FormatValidationError(err error) string {
	var errs []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()

			switch tag {
			case "required":
				errs = append(errs, fmt.Sprintf("%s is required", field))
			case "oneof":
				errs = append(errs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
			case "gt":
				errs = append(errs, fmt.Sprintf("%s must be greater than %s", field, e.Param()))
			case "uppercase":
				errs = append(errs, fmt.Sprintf("%s must be upper-case", field))
			case "datetime":
				errs = append(errs, fmt.Sprintf("%s must match %s", field, e.Param()))
			case "uuid4":
				errs = append(errs, fmt.Sprintf("%s must be a valid UUID", field))
			default:
				errs = append(errs, fmt.Sprintf("%s is invalid (%s)", field, tag))
			}
		}
	}
	if len(errs) == 0 {
		return err.Error()
	}
	return strings.Join(errs, "; ")
}
