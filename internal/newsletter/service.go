// Copyright (c) 2026 Litho Press. All rights reserved.

package newsletter

import (
	"context"
	"log/slog"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/internal/platform/validate"
	"github.com/lithopress/litho/pkg/pagination"
	"github.com/lithopress/litho/pkg/uuid"
)

// unsubscribeTokenLength is the byte length of the random opt-out token.
const unsubscribeTokenLength = 32

// Service orchestrates subscription management.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
Subscribe adds an email to the roster, idempotently.

Description: An email already on the roster is returned as-is;
a previously opted-out email is quietly reactivated. Either way
the caller cannot distinguish a new signup from a repeat one.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Subscriber: The active subscriber row
  - error: Validation or persistence errors
*/
func (service *Service) Subscribe(context context.Context, email string) (*Subscriber, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	existing, err := service.repository.FindByEmail(context, email)
	if err == nil {
		if existing.UnsubscribedAt == nil {
			return existing, nil
		}

		if err := service.repository.Reactivate(context, existing.ID); err != nil {
			return nil, err
		}
		existing.UnsubscribedAt = nil

		service.logger.Info("newsletter_resubscribed", slog.String("subscriber_id", existing.ID))
		return existing, nil
	}

	appErr := apperr.As(err)
	if appErr == nil || appErr.Code != "NOT_FOUND" {
		return nil, err
	}

	token, err := sec.GenerateSecureToken(unsubscribeTokenLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	subscriber := &Subscriber{
		ID:               uuid.New(),
		Email:            email,
		UnsubscribeToken: token,
	}

	if err := service.repository.Create(context, subscriber); err != nil {
		return nil, err
	}

	service.logger.Info("newsletter_subscribed", slog.String("subscriber_id", subscriber.ID))

	return subscriber, nil
}

/*
Unsubscribe opts a subscriber out using their personal token.

Description: No authentication is required; the token itself is the
credential. An unknown or already-used token reads as not found.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) Unsubscribe(context context.Context, token string) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.Unsubscribe(context, token); err != nil {
		return err
	}

	service.logger.Info("newsletter_unsubscribed")

	return nil
}

// List returns the active roster for staff review.
func (service *Service) List(context context.Context, params pagination.Params) ([]*Subscriber, int, error) {
	return service.repository.List(context, params)
}
