// Copyright (c) 2026 Litho Press. All rights reserved.

package release_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithopress/litho/internal/content/post"
	"github.com/lithopress/litho/internal/content/release"
	"github.com/lithopress/litho/pkg/pagination"
	"github.com/lithopress/litho/pkg/pointer"
)

type fakePostSource struct {
	posts      []*post.Post
	lastFilter post.Filter
}

func (source *fakePostSource) List(_ context.Context, filter post.Filter, _ pagination.Params) ([]*post.Post, int, error) {
	source.lastFilter = filter
	return source.posts, len(source.posts), nil
}

func publishedPost(id string, releaseDate time.Time) *post.Post {
	return &post.Post{
		ID:          id,
		Title:       "Post " + id,
		Slug:        "post-" + id,
		Status:      post.StatusPublished,
		ReleaseDate: pointer.To(releaseDate),
		CreatedAt:   releaseDate,
	}
}

func TestCalendar_WindowSortAndCap(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	source := &fakePostSource{posts: []*post.Post{
		publishedPost("stale", now.AddDate(0, -3, 0)),
		publishedPost("upcoming", now.AddDate(0, 1, 0)),
		publishedPost("recent", now.AddDate(0, -1, 0)),
	}}

	service := release.NewService(source, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	release.SetNow(service, func() time.Time { return now })

	entries, err := service.Calendar(context.Background())
	require.NoError(t, err)

	// The three-month-old post falls outside the lookback window.
	require.Len(t, entries, 2)
	assert.Equal(t, "recent", entries[0].PostID)
	assert.Equal(t, "upcoming", entries[1].PostID)
	assert.Equal(t, post.StatusPublished, source.lastFilter.Status)
}

func TestCalendar_CapsEntries(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	source := &fakePostSource{}
	for i := 0; i < 150; i++ {
		source.posts = append(source.posts,
			publishedPost(fmt.Sprintf("p-%d", i), now.AddDate(0, 0, i%60)))
	}

	service := release.NewService(source, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	release.SetNow(service, func() time.Time { return now })

	entries, err := service.Calendar(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 120)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.Before(entries[i-1].Date))
	}
}
