// Copyright (c) 2026 Litho Press. All rights reserved.

package analytics

import (
	"context"

	"github.com/lithopress/litho/pkg/pagination"
)

// Repository defines the durable side of the analytics data.
type Repository interface {

	// SearchPosts runs the public site search over published posts.
	SearchPosts(context context.Context, query string) ([]SearchResult, error)

	// RecordSearchMiss logs one zero-hit query.
	RecordSearchMiss(context context.Context, miss *SearchMiss) error

	// ListSearchMisses returns logged misses, newest first.
	ListSearchMisses(context context.Context, params pagination.Params) ([]*SearchMiss, int, error)

	// AddExperimentTotals folds counter deltas into the read model.
	AddExperimentTotals(context context.Context, name, variant string, impressions, conversions int64) error

	// ListExperimentTotals returns the read model rows.
	ListExperimentTotals(context context.Context) ([]*ExperimentTotals, error)
}
