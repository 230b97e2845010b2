// Copyright (c) 2026 Litho Press. All rights reserved.

// Package newsletter manages the mailing-list subscriber roster.
//
// Subscribing is idempotent per email address. Every subscriber gets an
// opaque unsubscribe token embedded in outgoing mail, so opting out
// needs no account or login.
package newsletter

import "time"

// Subscriber is one mailing-list member.
type Subscriber struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	UnsubscribeToken string     `json:"-"`
	SubscribedAt     time.Time  `json:"subscribed_at"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at,omitempty"`
}

const (
	FieldEmail = "email"
	FieldToken = "token"
)
