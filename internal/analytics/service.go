// Copyright (c) 2026 Litho Press. All rights reserved.

package analytics

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithopress/litho/internal/platform/validate"
	"github.com/lithopress/litho/pkg/pagination"
	"github.com/lithopress/litho/pkg/uuid"
)

// CounterSink is the live counter side of the experiment pipeline.
// Satisfied by [RedisCounterStore].
type CounterSink interface {
	RecordImpression(context context.Context, name, variant string) error
	RecordConversion(context context.Context, name, variant string) error
	Drain(context context.Context) ([]CounterDelta, error)
	Live(context context.Context) ([]CounterDelta, error)
}

// Service orchestrates search telemetry and experiment tallies.
type Service struct {
	repository Repository
	counters   CounterSink
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, counters CounterSink, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		counters:   counters,
		logger:     logger,
	}
}

// # Site Search

/*
Search runs the public site search and logs zero-hit queries.

Description: The search itself is a plain substring match over
published posts. When nothing matches, the query is recorded in the
miss log; a failure to record never fails the search.

Parameters:
  - context: context.Context
  - query: string

Returns:
  - []SearchResult: Matching posts, possibly empty
  - error: Validation or repository errors
*/
func (service *Service) Search(context context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)

	validator := &validate.Validator{}
	validator.Required(FieldQuery, query).MaxLen(FieldQuery, query, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	results, err := service.repository.SearchPosts(context, query)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		miss := &SearchMiss{ID: uuid.New(), Query: query}
		if err := service.repository.RecordSearchMiss(context, miss); err != nil {
			service.logger.Warn("search_miss_record_failed", slog.String("error", err.Error()))
		}
	}

	return results, nil
}

// SearchMisses returns the logged zero-hit queries for staff review.
func (service *Service) SearchMisses(context context.Context, params pagination.Params) ([]*SearchMiss, int, error) {
	return service.repository.ListSearchMisses(context, params)
}

// # Experiments

/*
RecordImpression counts one display of an experiment variant.

Parameters:
  - context: context.Context
  - name: string (Experiment identifier)
  - variant: string (Variant identifier)

Returns:
  - error: Validation or counter errors
*/
func (service *Service) RecordImpression(context context.Context, name, variant string) error {
	if err := validateExperiment(name, variant); err != nil {
		return err
	}
	return service.counters.RecordImpression(context, name, variant)
}

/*
RecordConversion counts one goal completion for an experiment variant.

Parameters:
  - context: context.Context
  - name: string (Experiment identifier)
  - variant: string (Variant identifier)

Returns:
  - error: Validation or counter errors
*/
func (service *Service) RecordConversion(context context.Context, name, variant string) error {
	if err := validateExperiment(name, variant); err != nil {
		return err
	}
	return service.counters.RecordConversion(context, name, variant)
}

/*
Totals merges the durable read model with the pending live counters.

Description: Administrators see up-to-the-moment numbers without
waiting for the next flush; the live deltas are added on top of the
folded totals per experiment/variant pair.

Parameters:
  - context: context.Context

Returns:
  - []*ExperimentTotals: Merged tallies, sorted by experiment then variant
  - error: Repository or counter errors
*/
func (service *Service) Totals(context context.Context) ([]*ExperimentTotals, error) {
	durable, err := service.repository.ListExperimentTotals(context)
	if err != nil {
		return nil, err
	}

	live, err := service.counters.Live(context)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*ExperimentTotals, len(durable))
	keyOf := func(name, variant string) string { return name + "\x00" + variant }

	for _, row := range durable {
		clone := *row
		merged[keyOf(row.Name, row.Variant)] = &clone
	}
	for _, delta := range live {
		row, ok := merged[keyOf(delta.Name, delta.Variant)]
		if !ok {
			row = &ExperimentTotals{Name: delta.Name, Variant: delta.Variant}
			merged[keyOf(delta.Name, delta.Variant)] = row
		}
		row.Impressions += delta.Impressions
		row.Conversions += delta.Conversions
	}

	totals := make([]*ExperimentTotals, 0, len(merged))
	for _, row := range merged {
		totals = append(totals, row)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Name != totals[j].Name {
			return totals[i].Name < totals[j].Name
		}
		return totals[i].Variant < totals[j].Variant
	})

	return totals, nil
}

/*
Flush drains the live counters into the durable read model.

Description: Called by the background flusher and by the admin
endpoint. Draining claims each experiment's hash atomically, so a
crash between drain and fold loses at most one drain's worth of
counts and never double-counts.

Parameters:
  - context: context.Context

Returns:
  - error: Counter or repository errors
*/
func (service *Service) Flush(context context.Context) error {
	deltas, err := service.counters.Drain(context)
	if err != nil {
		return err
	}

	for _, delta := range deltas {
		err := service.repository.AddExperimentTotals(context,
			delta.Name, delta.Variant, delta.Impressions, delta.Conversions)
		if err != nil {
			return err
		}
	}

	if len(deltas) > 0 {
		service.logger.Info("experiment_counters_flushed", slog.Int("variants", len(deltas)))
	}

	return nil
}

func validateExperiment(name, variant string) error {
	validator := &validate.Validator{}
	validator.Required(FieldExperiment, name).MaxLen(FieldExperiment, name, 100)
	validator.Required(FieldVariant, variant).MaxLen(FieldVariant, variant, 100)
	return validator.Err()
}
