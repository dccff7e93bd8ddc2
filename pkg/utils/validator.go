package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ravi-codingcity/FreightPro-B/pkg/apperrors"
)

// ValidationMessage is the top-level message of every field validation failure
const ValidationMessage = "Validation errors"

// Validator wraps go-playground/validator and turns its errors into apperrors field lists.
type Validator struct {
	v        *validator.Validate
	messages map[string]string
}

// NewValidator creates a validator that reports fields by their JSON names
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v, messages: make(map[string]string)}
}

// RegisterMessage overrides the message for a failed tag on a JSON field name
func (v *Validator) RegisterMessage(field, tag, message string) {
	v.messages[field+"|"+tag] = message
}

// Validate validates a struct and returns a VALIDATION *apperrors.Error listing every failed field
func (v *Validator) Validate(s interface{}) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make([]apperrors.FieldError, 0, len(validationErrs))
	for _, e := range validationErrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fieldPath(e.Namespace()),
			Message: v.message(e),
		})
	}

	return apperrors.Validation(ValidationMessage, fields...)
}

func (v *Validator) message(e validator.FieldError) string {
	if msg, ok := v.messages[e.Field()+"|"+e.Tag()]; ok {
		return msg
	}
	return e.Field() + " " + friendlyMessage(e)
}

// fieldPath drops the root struct name, e.g. "shippingLines[0].lineName"
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", e.Param())
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must not contain more than %s items", e.Param())
		}
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "mongodb":
		return "must be a valid ObjectID"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
