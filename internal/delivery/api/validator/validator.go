// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"reflect"
	"strings"

	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator validates request DTOs bound by echo.
type Validator struct {
	validate *playground.Validate
}

// New returns a Validator that reports field names by their json tag.
func New() *Validator {
	validate := playground.New(playground.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: validate}
}

// Validate implements echo.Validator. Failures are ErrBadInput with the offending fields as details.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field()+": "+fe.Tag())
	}

	return domainerrors.ErrBadInput.WithDetails(strings.Join(fields, ", "))
}
