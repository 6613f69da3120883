package domain

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidSubmission wraps validation failures. The wrapped error's
	// message is safe to show to the visitor.
	ErrInvalidSubmission = errors.New("invalid contact submission")
	// ErrDispatchFailed wraps relay failures. The wrapped error is for logs only.
	ErrDispatchFailed = errors.New("contact notification dispatch failed")
)

// ContactSubmission represents a contact form submission
type ContactSubmission struct {
	Name    string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" form:"email" validate:"required,contact_email,max=254"`
	Phone   string `json:"phone" form:"phone" validate:"omitempty,max=32"`
	Message string `json:"message" form:"message" validate:"required,min=10,max=5000"`
}

// NewContactSubmission returns a trimmed copy of the submitted fields.
func NewContactSubmission(name, email, phone, message string) *ContactSubmission {
	return &ContactSubmission{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Phone:   strings.TrimSpace(phone),
		Message: strings.TrimSpace(message),
	}
}

// NotificationPayload is the email composed from a validated submission.
type NotificationPayload struct {
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates the submission, composes the notification and sends it
	// once. Errors wrap ErrInvalidSubmission or ErrDispatchFailed.
	Submit(ctx context.Context, sub *ContactSubmission) error
}

// NotificationDispatcher hands a composed notification to the mail relay.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, payload *NotificationPayload) error
}
