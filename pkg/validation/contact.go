package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/kirtansukhadiya/logified-prod/internal/domain"
)

// Limits enforced on contact submissions. They mirror the validate tags on
// domain.ContactSubmission and are rendered into the contact form.
const (
	NameMinLength    = 2
	NameMaxLength    = 100
	EmailMaxLength   = 254
	PhoneMaxLength   = 32
	MessageMinLength = 10
	MessageMaxLength = 5000
)

// ContactError is a rejected submission. Reason is safe to show to the visitor.
type ContactError struct {
	Field  string
	Reason string
}

func (e *ContactError) Error() string {
	return e.Reason
}

// ContactValidator checks submissions against the shared contact form rules.
type ContactValidator struct {
	validate *validator.Validate
}

func NewContactValidator() (*ContactValidator, error) {
	v := validator.New()
	if err := RegisterValidators(v); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	return &ContactValidator{validate: v}, nil
}

// MustNewContactValidator panics if the custom tags cannot be registered.
func MustNewContactValidator() *ContactValidator {
	v, err := NewContactValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate returns nil for an acceptable submission, otherwise a *ContactError
// describing the most fundamental problem. Callers are expected to pass a
// trimmed submission (see domain.NewContactSubmission).
func (cv *ContactValidator) Validate(sub *domain.ContactSubmission) error {
	if sub == nil {
		return &ContactError{Reason: MessageRequiredFields}
	}

	err := cv.validate.Struct(sub)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &ContactError{Reason: MessageRequiredFields}
	}

	first := validationErrors[0]
	for _, fe := range validationErrors[1:] {
		if tagRank(fe.Tag()) < tagRank(first.Tag()) {
			first = fe
		}
	}

	return &ContactError{
		Field:  first.Field(),
		Reason: formatSingleError(first),
	}
}
