package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client *resend.Client
	apiKey string
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		apiKey: apiKey,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	if s.apiKey == "" {
		return ErrNotConfigured
	}
	if err := msg.validate(); err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

// Verify only checks that an API key is present; Resend has no dry-run call.
func (s *ResendSender) Verify(_ context.Context) error {
	if s.apiKey == "" {
		return ErrNotConfigured
	}
	return nil
}
