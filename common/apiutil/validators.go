package apiutil

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pomi-ng/StatusCodesApi/pkg/errors"
)

// NewValidator builds a validator that reports fields by their json names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{v}
}

type Validator struct {
	validator *validator.Validate
}

// Validate checks the struct tags on i and returns one ValidationError per
// failed field, nil when the value is valid.
func (v *Validator) Validate(i interface{}) []errors.ValidationError {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []errors.ValidationError{{Field: "", Message: err.Error()}}
	}

	out := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, errors.ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Message: validationMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", fe.Field())
	case "min":
		return fmt.Sprintf("'%s' must be at least %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("'%s' failed validation on '%s'", fe.Field(), fe.Tag())
	}
}
