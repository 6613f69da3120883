package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// EmailPattern is the address shape accepted by the contact form:
// something@something.something with no whitespace or extra "@".
// The HTML form renders the same pattern (without anchors).
const EmailPattern = `[^\s@]+@[^\s@]+\.[^\s@]+`

var emailRegex = regexp.MustCompile(`^` + EmailPattern + `$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("contact_email", ContactEmail)
}

// ContactEmail validates the simple local@domain.tld shape.
// Empty values pass; pair it with "required".
func ContactEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return IsContactEmail(val)
}

func IsContactEmail(s string) bool {
	return emailRegex.MatchString(s)
}
