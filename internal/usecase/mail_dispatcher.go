package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirtansukhadiya/logified-prod/internal/domain"
	"github.com/kirtansukhadiya/logified-prod/pkg/email"
)

type mailDispatcher struct {
	sender  email.Sender
	from    string
	to      string
	timeout time.Duration
}

// NewMailDispatcher sends every notification from `from` to the operator
// address `to`. A non-positive timeout leaves the relay client's own limits.
func NewMailDispatcher(sender email.Sender, from, to string, timeout time.Duration) domain.NotificationDispatcher {
	return &mailDispatcher{
		sender:  sender,
		from:    from,
		to:      to,
		timeout: timeout,
	}
}

// Dispatch makes a single send attempt. The attempt is detached from the
// caller's cancellation so a dropped client connection does not abort a
// message already handed to the relay.
func (d *mailDispatcher) Dispatch(ctx context.Context, payload *domain.NotificationPayload) error {
	if d.to == "" {
		return errors.Join(email.ErrSendFailed, fmt.Errorf("%w: no destination address", email.ErrNotConfigured))
	}

	ctx = context.WithoutCancel(ctx)
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	msg := &email.Message{
		From:    d.from,
		To:      []string{d.to},
		ReplyTo: payload.ReplyTo,
		Subject: payload.Subject,
		HTML:    payload.HTMLBody,
		Text:    payload.TextBody,
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		return errors.Join(email.ErrSendFailed, err)
	}
	return nil
}
