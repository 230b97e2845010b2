// Copyright (c) 2026 Litho Press. All rights reserved.

/*
Package analytics collects lightweight editorial telemetry.

Two concerns live here. Search misses: every site search that returns
zero hits is logged so editors can see what readers wanted and did not
find. Experiments: A/B variant impressions and conversions accumulate
as Redis hash counters and are periodically folded into a durable
Postgres read model.
*/
package analytics

import "time"

// SearchResult is one hit of the public site search.
type SearchResult struct {
	PostID string `json:"post_id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
}

// SearchMiss records one zero-hit search.
type SearchMiss struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ExperimentTotals is the durable tally for one experiment variant.
type ExperimentTotals struct {
	Name        string    `json:"name"`
	Variant     string    `json:"variant"`
	Impressions int64     `json:"impressions"`
	Conversions int64     `json:"conversions"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	FieldQuery      = "q"
	FieldExperiment = "experiment"
	FieldVariant    = "variant"
)
