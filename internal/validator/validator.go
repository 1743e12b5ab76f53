package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors accumulates validation messages per field. Checks never
// short-circuit: every failed rule appends its message and the whole map is
// returned to the caller at once.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Merge folds another error map into this one.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		fe[field] = append(fe[field], messages...)
	}
}

// HasErrors reports whether any field failed.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// ValidationError carries the field -> messages map across the error interface.
type ValidationError struct {
	Errors FieldErrors
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msgs := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, strings.Join(msgs, "; ")))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator wraps go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator whose error messages are keyed by json tag names,
// so clients see the same field names they sent.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate: v,
	}
}

// Validate runs structural validation on a struct. Returns *ValidationError
// when any field fails.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Reflection or usage error, not a field failure
		return err
	}

	fieldErrors := make(FieldErrors)
	for _, fe := range validationErrors {
		fieldErrors.Add(fe.Field(), getErrorMessage(fe))
	}

	return &ValidationError{Errors: fieldErrors}
}

// Check runs structural validation and returns the field map directly.
// Convenient for services that append cross-field rules afterwards.
func (v *Validator) Check(i interface{}) FieldErrors {
	fieldErrors := make(FieldErrors)
	if err := v.Validate(i); err != nil {
		if vErr, ok := err.(*ValidationError); ok {
			fieldErrors.Merge(vErr.Errors)
		} else {
			fieldErrors.Add("_", err.Error())
		}
	}
	return fieldErrors
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
