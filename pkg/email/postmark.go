package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

const postmarkTag = "contact-form"

// PostmarkSender implements Sender using Postmark's transactional API.
type PostmarkSender struct {
	client      *postmark.Client
	serverToken string
}

func NewPostmarkSender(serverToken, accountToken string) *PostmarkSender {
	return &PostmarkSender{
		client:      postmark.NewClient(serverToken, accountToken),
		serverToken: serverToken,
	}
}

func (s *PostmarkSender) Send(ctx context.Context, msg *Message) error {
	if s.serverToken == "" {
		return ErrNotConfigured
	}
	if err := msg.validate(); err != nil {
		return err
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     msg.From,
		To:       strings.Join(msg.To, ", "),
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		Tag:      postmarkTag,
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
	})
	if err != nil {
		return fmt.Errorf("postmark: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message)
	}
	return nil
}

// Verify fetches the server the token belongs to.
func (s *PostmarkSender) Verify(ctx context.Context) error {
	if s.serverToken == "" {
		return ErrNotConfigured
	}
	if _, err := s.client.GetCurrentServer(ctx); err != nil {
		return errors.Join(ErrVerifyFailed, err)
	}
	return nil
}
