// Package services file: services/validation.go
package services

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"catering-admin/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// newValidator configures the validator used for every admin form.
// Field names in errors come from the `form` tag so they match the inputs.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("money", isMoney)
	_ = v.RegisterValidation("positiveint", isPositiveInt)
	return v
}

// isMoney accepts a decimal amount of zero or more.
func isMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && !d.IsNegative()
}

// isPositiveInt accepts a whole number of one or more.
func isPositiveInt(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return err == nil && n >= 1
}

// ValidateForm runs the `validate` tags of form and returns
// apperr.ValidationErrors, or nil when the form is valid.
func ValidateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(apperr.ValidationErrors, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		out = append(out, &apperr.ValidationError{Field: e.Field(), Message: validationMessage(e)})
	}
	return out
}

// validationMessage returns a human-readable validation message
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "datetime":
		return "Use the YYYY-MM-DD format"
	case "money":
		return "Must be a number of 0 or more"
	case "positiveint":
		return "Must be a whole number of 1 or more"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "url":
		return "Invalid URL format"
	default:
		return "Invalid value"
	}
}
