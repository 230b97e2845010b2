// Copyright (c) 2026 Litho Press. All rights reserved.

package analytics_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithopress/litho/internal/analytics"
	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/pkg/pagination"
)

type fakeRepository struct {
	posts  []analytics.SearchResult
	misses []*analytics.SearchMiss
	folded map[string]*analytics.ExperimentTotals
}

func newFakeAnalyticsRepository() *fakeRepository {
	return &fakeRepository{folded: make(map[string]*analytics.ExperimentTotals)}
}

func (repository *fakeRepository) SearchPosts(_ context.Context, query string) ([]analytics.SearchResult, error) {
	hits := make([]analytics.SearchResult, 0)
	for _, result := range repository.posts {
		if containsFold(result.Title, query) {
			hits = append(hits, result)
		}
	}
	return hits, nil
}

func (repository *fakeRepository) RecordSearchMiss(_ context.Context, miss *analytics.SearchMiss) error {
	clone := *miss
	clone.OccurredAt = time.Now().UTC()
	repository.misses = append(repository.misses, &clone)
	return nil
}

func (repository *fakeRepository) ListSearchMisses(_ context.Context, _ pagination.Params) ([]*analytics.SearchMiss, int, error) {
	return repository.misses, len(repository.misses), nil
}

func (repository *fakeRepository) AddExperimentTotals(_ context.Context, name, variant string, impressions, conversions int64) error {
	key := name + "/" + variant
	row, ok := repository.folded[key]
	if !ok {
		row = &analytics.ExperimentTotals{Name: name, Variant: variant}
		repository.folded[key] = row
	}
	row.Impressions += impressions
	row.Conversions += conversions
	return nil
}

func (repository *fakeRepository) ListExperimentTotals(_ context.Context) ([]*analytics.ExperimentTotals, error) {
	totals := make([]*analytics.ExperimentTotals, 0, len(repository.folded))
	for _, row := range repository.folded {
		clone := *row
		totals = append(totals, &clone)
	}
	return totals, nil
}

func containsFold(haystack, needle string) bool {
	h, n := []rune(haystack), []rune(needle)
	lower := func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + 32
		}
		return r
	}
outer:
	for i := 0; i+len(n) <= len(h); i++ {
		for j := range n {
			if lower(h[i+j]) != lower(n[j]) {
				continue outer
			}
		}
		return true
	}
	return false
}

// fakeCounters mirrors the drain-then-fold contract of the Redis store.
type fakeCounters struct {
	pending map[string]*analytics.CounterDelta
}

func newFakeCounters() *fakeCounters {
	return &fakeCounters{pending: make(map[string]*analytics.CounterDelta)}
}

func (counters *fakeCounters) delta(name, variant string) *analytics.CounterDelta {
	key := name + "/" + variant
	row, ok := counters.pending[key]
	if !ok {
		row = &analytics.CounterDelta{Name: name, Variant: variant}
		counters.pending[key] = row
	}
	return row
}

func (counters *fakeCounters) RecordImpression(_ context.Context, name, variant string) error {
	counters.delta(name, variant).Impressions++
	return nil
}

func (counters *fakeCounters) RecordConversion(_ context.Context, name, variant string) error {
	counters.delta(name, variant).Conversions++
	return nil
}

func (counters *fakeCounters) Drain(_ context.Context) ([]analytics.CounterDelta, error) {
	drained := make([]analytics.CounterDelta, 0, len(counters.pending))
	for _, row := range counters.pending {
		drained = append(drained, *row)
	}
	counters.pending = make(map[string]*analytics.CounterDelta)
	return drained, nil
}

func (counters *fakeCounters) Live(_ context.Context) ([]analytics.CounterDelta, error) {
	live := make([]analytics.CounterDelta, 0, len(counters.pending))
	for _, row := range counters.pending {
		live = append(live, *row)
	}
	return live, nil
}

func newTestService() (*analytics.Service, *fakeRepository, *fakeCounters) {
	repository := newFakeAnalyticsRepository()
	counters := newFakeCounters()
	return analytics.NewService(repository, counters, slog.New(slog.NewTextHandler(io.Discard, nil))), repository, counters
}

func TestSearch_RecordsMissesOnly(t *testing.T) {
	service, repository, _ := newTestService()
	repository.posts = []analytics.SearchResult{
		{PostID: "p-1", Title: "Steam Deck review", Slug: "steam-deck-review"},
	}

	hits, err := service.Search(context.Background(), "steam")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Empty(t, repository.misses)

	hits, err = service.Search(context.Background(), "mechanical keyboards")
	require.NoError(t, err)
	assert.Empty(t, hits)
	require.Len(t, repository.misses, 1)
	assert.Equal(t, "mechanical keyboards", repository.misses[0].Query)
}

func TestSearch_RejectsEmptyQuery(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Search(context.Background(), "   ")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestExperiments_FlushFoldsAndClears(t *testing.T) {
	service, repository, counters := newTestService()

	for n := 0; n < 3; n++ {
		require.NoError(t, service.RecordImpression(context.Background(), "cta-copy", "a"))
	}
	require.NoError(t, service.RecordImpression(context.Background(), "cta-copy", "b"))
	require.NoError(t, service.RecordConversion(context.Background(), "cta-copy", "a"))

	require.NoError(t, service.Flush(context.Background()))

	folded := repository.folded["cta-copy/a"]
	require.NotNil(t, folded)
	assert.Equal(t, int64(3), folded.Impressions)
	assert.Equal(t, int64(1), folded.Conversions)
	assert.Empty(t, counters.pending)

	// A second flush with nothing pending is a no-op.
	require.NoError(t, service.Flush(context.Background()))
	assert.Equal(t, int64(3), repository.folded["cta-copy/a"].Impressions)
}

func TestExperiments_TotalsMergeLiveAndDurable(t *testing.T) {
	service, _, _ := newTestService()

	require.NoError(t, service.RecordImpression(context.Background(), "cta-copy", "a"))
	require.NoError(t, service.RecordImpression(context.Background(), "cta-copy", "a"))
	require.NoError(t, service.Flush(context.Background()))

	// New traffic after the flush stays pending in the counters.
	require.NoError(t, service.RecordImpression(context.Background(), "cta-copy", "a"))
	require.NoError(t, service.RecordConversion(context.Background(), "cta-copy", "a"))

	totals, err := service.Totals(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, int64(3), totals[0].Impressions)
	assert.Equal(t, int64(1), totals[0].Conversions)
}

func TestExperiments_ValidatesIdentifiers(t *testing.T) {
	service, _, _ := newTestService()

	err := service.RecordImpression(context.Background(), "", "a")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
