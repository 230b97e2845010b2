// Copyright (c) 2026 Litho Press. All rights reserved.

/*
Package release builds the public release calendar from the post catalogue.

Posts rarely carry a clean machine-readable release date; editors write
them into titles and body copy instead. This package infers a best-guess
calendar date for each published post, classifies the subject as a game
or tech release, and serves the upcoming window as a cached calendar.
*/
package release

import "time"

// Entry is one row of the public release calendar.
type Entry struct {
	PostID string    `json:"post_id"`
	Title  string    `json:"title"`
	Slug   string    `json:"slug"`
	Date   time.Time `json:"date"`
	Type   string    `json:"type"`
}
