package common

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Merge copies the field errors reported by ozzo-validation into the validator.
// Errors that are not field errors are returned unchanged.
func (v *Validator) Merge(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	for field, fieldErr := range errs {
		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			for sub, subErr := range nested {
				v.AddError(field+"."+sub, subErr.Error())
			}
			continue
		}
		v.AddError(field, fieldErr.Error())
	}

	return nil
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}
