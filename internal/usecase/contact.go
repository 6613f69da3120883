package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirtansukhadiya/logified-prod/internal/domain"
	"github.com/kirtansukhadiya/logified-prod/pkg/security"
	"github.com/kirtansukhadiya/logified-prod/pkg/validation"
)

type contactUsecase struct {
	validator  *validation.ContactValidator
	composer   *ContactComposer
	dispatcher domain.NotificationDispatcher
	log        *slog.Logger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(
	validator *validation.ContactValidator,
	composer *ContactComposer,
	dispatcher domain.NotificationDispatcher,
	log *slog.Logger,
) domain.ContactUsecase {
	return &contactUsecase{
		validator:  validator,
		composer:   composer,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Submit validates the submission, composes the notification and sends it.
// Nothing is retried; a failed submission must be resent by the visitor.
func (uc *contactUsecase) Submit(ctx context.Context, sub *domain.ContactSubmission) error {
	if err := uc.validator.Validate(sub); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidSubmission, err)
	}

	payload, err := uc.composer.Compose(sub)
	if err != nil {
		return fmt.Errorf("compose notification: %w", err)
	}

	if err := uc.dispatcher.Dispatch(ctx, payload); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDispatchFailed, err)
	}

	requestID, _ := ctx.Value(domain.KeyRequestID).(string)
	uc.log.InfoContext(ctx, "contact email sent",
		slog.String("request_id", requestID),
		slog.String("email", security.MaskEmail(sub.Email)),
	)
	return nil
}
