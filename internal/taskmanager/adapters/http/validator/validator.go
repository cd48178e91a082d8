// Package validator adapts go-playground/validator to fiber's StructValidator.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskmanager/internal/taskmanager/domain/entities"
)

const (
	tagISO8601 = "iso8601"

	errRegisterValidation = "failed to register validation"
	errValidateStruct     = "failed to validate struct"
)

// ValidationError carries a json field name to message map.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request validation failed: %d invalid field(s)", len(e.Fields))
}

// StructValidator implements fiber.StructValidator.
type StructValidator struct {
	validate *validator.Validate
}

// New returns a validator that reports fields by their json name and knows the iso8601 tag.
func New() (*StructValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	if err := v.RegisterValidation(tagISO8601, isISO8601); err != nil {
		return nil, fmt.Errorf("%s %s: %w", errRegisterValidation, tagISO8601, err)
	}

	return &StructValidator{validate: v}, nil
}

// Validate checks out against its validate tags.
func (v *StructValidator) Validate(out any) error {
	err := v.validate.Struct(out)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%s: %w", errValidateStruct, err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = messageFor(fe)
	}

	return &ValidationError{Fields: fields}
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "query"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func isISO8601(fl validator.FieldLevel) bool {
	_, err := entities.ParseDueDate(fl.Field().String())
	return err == nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case tagISO8601:
		return fmt.Sprintf("%s must be an ISO-8601 date or date-time", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
