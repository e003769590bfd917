package model

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldErrors maps a form field to the validation rule it failed
type FieldErrors map[string]string

// FieldErrorsOf extracts per-field failures from an error returned by
// Validate. It returns nil for any other error.
func FieldErrorsOf(err error) FieldErrors {
	for e := err; e != nil; e = errors.Unwrap(e) {
		ge, ok := e.(*goerr.Error)
		if !ok {
			continue
		}
		if fields, ok := ge.Values()[FieldKey].(FieldErrors); ok {
			return fields
		}
	}
	return nil
}

// Validate checks a form struct against its validate tags
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return goerr.Wrap(err, "failed to validate form")
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return goerr.Wrap(ErrValidation, "invalid form", goerr.V(FieldKey, fields))
}
