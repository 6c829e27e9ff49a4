package services

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidURL is returned for URLs that are not absolute
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidDate is returned for timestamps in none of the supported formats
	ErrInvalidDate = errors.New("Invalid Date")
)

// ValidationError describes the first invalid field of a form
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	// url accepts things like "ftp:/bad", absurl also wants a host
	if err := v.RegisterValidation("absurl", isAbsoluteURL); err != nil {
		panic(err)
	}

	return v
}

func isAbsoluteURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}

func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	fieldErr := validationErrs[0]
	return &ValidationError{Field: fieldErr.Field(), Reason: reason(fieldErr.Tag())}
}

func reason(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "number":
		return "must be a non-negative integer"
	case "max":
		return "is too large"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
