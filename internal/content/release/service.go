// Copyright (c) 2026 Litho Press. All rights reserved.

package release

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lithopress/litho/internal/content/post"
	"github.com/lithopress/litho/internal/platform/constants"
	"github.com/lithopress/litho/pkg/pagination"
)

// calendarCacheKey is viewer-neutral on purpose: the calendar contains
// no per-viewer data, so one cached payload serves every request.
const calendarCacheKey = constants.RedisPrefixReleaseCalendar + "entries"

// calendarScanLimit bounds how many published posts one calendar
// rebuild pulls from the catalogue.
const calendarScanLimit = 1000

// PostSource supplies the published posts the calendar is built from.
// Satisfied by the post repository.
type PostSource interface {
	List(context context.Context, filter post.Filter, params pagination.Params) ([]*post.Post, int, error)
}

// Service builds and caches the public release calendar.
type Service struct {
	posts  PostSource
	cache  *redis.Client
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewService constructs a new [Service]. The cache client may be nil,
// which disables caching and rebuilds the calendar on every request.
func NewService(posts PostSource, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		posts:  posts,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

/*
Calendar returns the public release calendar.

Description: Serves the cached payload when fresh. On a miss, every
published post is run through the date inferencer; entries older than
the lookback window are dropped, the rest are sorted ascending by date
and capped. Cache failures degrade to a rebuild, never to an error.

Parameters:
  - context: context.Context

Returns:
  - []Entry: Calendar rows, ascending by date
  - error: Repository errors from the post catalogue
*/
func (service *Service) Calendar(context context.Context) ([]Entry, error) {
	if cached, ok := service.readCache(context); ok {
		return cached, nil
	}

	entries, err := service.build(context)
	if err != nil {
		return nil, err
	}

	service.writeCache(context, entries)
	return entries, nil
}

func (service *Service) build(context context.Context) ([]Entry, error) {
	posts, _, err := service.posts.List(context,
		post.Filter{Status: post.StatusPublished},
		pagination.Params{Page: 1, Limit: calendarScanLimit},
	)
	if err != nil {
		return nil, err
	}

	cutoff := service.now().UTC().AddDate(0, -constants.ReleaseCalendarLookbackMonths, 0)

	entries := make([]Entry, 0, len(posts))
	for _, p := range posts {
		date := Infer(p)
		if date.Before(cutoff) {
			continue
		}

		entries = append(entries, Entry{
			PostID: p.ID,
			Title:  p.Title,
			Slug:   p.Slug,
			Date:   date,
			Type:   InferType(p),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	if len(entries) > constants.ReleaseCalendarMaxEntries {
		entries = entries[:constants.ReleaseCalendarMaxEntries]
	}

	return entries, nil
}

func (service *Service) readCache(context context.Context) ([]Entry, bool) {
	if service.cache == nil {
		return nil, false
	}

	payload, err := service.cache.Get(context, calendarCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (service *Service) writeCache(context context.Context, entries []Entry) {
	if service.cache == nil {
		return
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}

	if err := service.cache.Set(context, calendarCacheKey, payload, constants.ReleaseCalendarCacheTTL).Err(); err != nil {
		service.logger.Warn("release_calendar_cache_write_failed", slog.String("error", err.Error()))
	}
}
