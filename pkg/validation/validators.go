package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters (any script), spaces, hyphens, and apostrophes only.
	// Digits and other punctuation are rejected.
	personNameRegex = regexp.MustCompile(`^[\p{L}' -]+$`)
)

// New returns a validator instance with the custom validators registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("person_name", PersonName)
}

// PersonName validates that a string contains only valid name characters
func PersonName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return personNameRegex.MatchString(val)
}
