package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MessageRequiredFields is shown whenever name, email or message is missing.
const MessageRequiredFields = "Please fill in all required fields (Name, Email, and Message)."

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	param := e.Param()

	switch e.Tag() {
	case "required":
		return MessageRequiredFields

	case "contact_email", "email":
		return "Please enter a valid email address."

	case "min":
		switch fieldName {
		case "Name":
			return fmt.Sprintf("Please enter a valid name (at least %s characters).", param)
		case "Message":
			return fmt.Sprintf("Please enter a more detailed message (at least %s characters).", param)
		}
		return fmt.Sprintf("%s must be at least %s characters.", fieldName, param)

	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fieldName, param)

	default:
		return fmt.Sprintf("%s is invalid.", fieldName)
	}
}

// tagRank orders failures so the most fundamental problem is reported first.
func tagRank(tag string) int {
	switch tag {
	case "required":
		return 0
	case "contact_email", "email":
		return 1
	case "max":
		return 2
	case "min":
		return 3
	default:
		return 4
	}
}
