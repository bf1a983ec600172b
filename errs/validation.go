package errs

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// NewValidationError turns a validator failure into a 400 naming the first offending
// field. Errors that did not come from the validator become a plain bad request.
func NewValidationError(err error) *ApiErr {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ApiErr{StatusCode: http.StatusBadRequest, err: ErrInvalidField, Details: err.Error(), Cause: err}
	}

	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		apiErr := NewMissingRequiredFieldError(fe.Field())
		apiErr.Cause = err
		return apiErr
	}

	apiErr := NewInvalidFieldError(fe.Field(), describeRule(fe))
	apiErr.Cause = err
	return apiErr
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "slug":
		return "may only contain letters, numbers, hyphens and underscores"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed the %s rule", fe.Tag())
	}
}
