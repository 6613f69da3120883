package email

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/kirtansukhadiya/logified-prod/config"
)

var (
	ErrNotConfigured = errors.New("email relay is not configured")
	ErrNoRecipient   = errors.New("email must have a recipient")
	ErrNoSubject     = errors.New("email must have a subject")
	ErrSendFailed    = errors.New("failed to send email")
	ErrVerifyFailed  = errors.New("email relay verification failed")
)

// Message is a fully composed email ready for the relay.
type Message struct {
	From    string // RFC 5322 address, e.g. `"LOGIFIED SOLUTIONS" <me@example.com>`
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

func (m *Message) validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipient
	}
	if m.Subject == "" {
		return ErrNoSubject
	}
	return nil
}

// Sender delivers messages through one external relay.
type Sender interface {
	// Send makes exactly one delivery attempt.
	Send(ctx context.Context, msg *Message) error
	// Verify checks credentials and reachability without sending anything.
	Verify(ctx context.Context) error
}

// Recipient formats a name and address as an RFC 5322 mailbox.
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return (&mail.Address{Name: name, Address: address}).String()
}

// NewSender builds the relay selected by MAIL_PROVIDER.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.MailProvider {
	case config.MailProviderSMTP, "":
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}), nil
	case config.MailProviderResend:
		return NewResendSender(cfg.ResendAPIKey), nil
	case config.MailProviderPostmark:
		return NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.MailProvider)
	}
}
