package errorbag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MessageFunc renders a human readable message for a failed validation rule.
type MessageFunc func(fe validator.FieldError) string

// FromValidator converts the result of validator.Struct into a bag. A nil
// err yields an empty bag. Errors that are not validator.ValidationErrors
// are returned unchanged so callers can tell a failed validation apart from a
// misconfigured validator.
//
// Keys are the field namespace without the root struct name, so register a
// tag name func on the validator (e.g. returning the json tag) to key the bag
// by the same names used in the form.
func FromValidator(err error, message MessageFunc) (*Bag, error) {
	bag := New()
	if err == nil {
		return bag, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, fmt.Errorf("errorbag: unexpected validation error: %w", err)
	}

	if message == nil {
		message = DefaultMessage
	}
	for _, fe := range validationErrs {
		bag.Add(namespaceKey(fe.Namespace()), message(fe))
	}
	return bag, nil
}

// DefaultMessage covers the common validator tags with English messages.
func DefaultMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_if", "required_unless", "required_with", "required_without":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func namespaceKey(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	return TransformKey(namespace)
}
