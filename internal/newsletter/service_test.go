// Copyright (c) 2026 Litho Press. All rights reserved.

package newsletter_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithopress/litho/internal/newsletter"
	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/pkg/pagination"
)

type fakeRepository struct {
	byEmail map[string]*newsletter.Subscriber
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byEmail: make(map[string]*newsletter.Subscriber)}
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (repository *fakeRepository) FindByEmail(_ context.Context, email string) (*newsletter.Subscriber, error) {
	subscriber, ok := repository.byEmail[normalize(email)]
	if !ok {
		return nil, apperr.NotFound("Subscriber")
	}
	clone := *subscriber
	return &clone, nil
}

func (repository *fakeRepository) Create(_ context.Context, subscriber *newsletter.Subscriber) error {
	clone := *subscriber
	clone.Email = normalize(subscriber.Email)
	clone.SubscribedAt = time.Now().UTC()
	repository.byEmail[clone.Email] = &clone
	return nil
}

func (repository *fakeRepository) Reactivate(_ context.Context, id string) error {
	for _, subscriber := range repository.byEmail {
		if subscriber.ID == id {
			subscriber.UnsubscribedAt = nil
			return nil
		}
	}
	return apperr.NotFound("Subscriber")
}

func (repository *fakeRepository) Unsubscribe(_ context.Context, token string) error {
	for _, subscriber := range repository.byEmail {
		if subscriber.UnsubscribeToken == token && subscriber.UnsubscribedAt == nil {
			now := time.Now().UTC()
			subscriber.UnsubscribedAt = &now
			return nil
		}
	}
	return apperr.NotFound("Subscription")
}

func (repository *fakeRepository) List(_ context.Context, _ pagination.Params) ([]*newsletter.Subscriber, int, error) {
	active := make([]*newsletter.Subscriber, 0)
	for _, subscriber := range repository.byEmail {
		if subscriber.UnsubscribedAt == nil {
			clone := *subscriber
			active = append(active, &clone)
		}
	}
	return active, len(active), nil
}

func newTestService() (*newsletter.Service, *fakeRepository) {
	repository := newFakeRepository()
	return newsletter.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil))), repository
}

func TestSubscribe_Idempotent(t *testing.T) {
	service, repository := newTestService()

	first, err := service.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, first.UnsubscribeToken)

	second, err := service.Subscribe(context.Background(), "Reader@Example.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repository.byEmail, 1)
}

func TestSubscribe_RejectsInvalidEmail(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Subscribe(context.Background(), "not-an-email")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUnsubscribe_ThenResubscribeReactivates(t *testing.T) {
	service, _ := newTestService()

	subscriber, err := service.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)

	require.NoError(t, service.Unsubscribe(context.Background(), subscriber.UnsubscribeToken))

	active, _, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, active)

	// Spent tokens read as not found.
	err = service.Unsubscribe(context.Background(), subscriber.UnsubscribeToken)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	returning, err := service.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, subscriber.ID, returning.ID)
	assert.Nil(t, returning.UnsubscribedAt)

	active, _, err = service.List(context.Background(), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
