// Copyright (c) 2026 Litho Press. All rights reserved.

package newsletter

import (
	"context"

	"github.com/lithopress/litho/pkg/pagination"
)

// Repository defines the data access contract for subscribers.
type Repository interface {

	// FindByEmail returns the subscriber row for an email, active or not.
	FindByEmail(context context.Context, email string) (*Subscriber, error)

	// Create persists a new subscriber.
	Create(context context.Context, subscriber *Subscriber) error

	// Reactivate clears the unsubscribed marker for a returning subscriber.
	Reactivate(context context.Context, id string) error

	// Unsubscribe marks the row matching the token as opted out.
	Unsubscribe(context context.Context, token string) error

	// List returns active subscribers, newest first.
	List(context context.Context, params pagination.Params) ([]*Subscriber, int, error)
}
