package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error carries one message per violated field so clients can render
// field-level feedback. It reports every failing field, not just the first.
type Error struct {
	Fields map[string]string `json:"fields"`
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// messageFor maps a validator tag to a user-facing message.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "email":
		return "Must be a valid email address"
	case "person_name":
		return "May only contain letters, spaces, hyphens, and apostrophes"
	case "ip4_addr":
		return "Must be a valid IPv4 address"
	default:
		return fmt.Sprintf("Failed validation rule %q", fe.Tag())
	}
}

// Expand converts a validator error into a field-keyed Error. Field names are
// lowercased to match their JSON representation. Non-validator errors come
// back unchanged so callers can propagate them as internal failures.
func Expand(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonFieldName(fe.Field())] = messageFor(fe)
	}
	return &Error{Fields: fields}
}

func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}
