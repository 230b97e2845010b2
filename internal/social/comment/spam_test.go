// Copyright (c) 2026 Litho Press. All rights reserved.

package comment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithopress/litho/internal/social/comment"
)

/*
TestScore_Signals checks each spam signal in isolation and in combination.
*/
func TestScore_Signals(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantScore int
		wantFlags []string
	}{
		{
			name:      "clean_comment",
			body:      "Really enjoyed this post, thanks for writing it up.",
			wantScore: 0,
			wantFlags: []string{},
		},
		{
			name:      "single_link_tolerated",
			body:      "Relevant background here: https://example.com/article for anyone curious.",
			wantScore: 22,
			wantFlags: []string{comment.FlagContainsLinks},
		},
		{
			name:      "link_dump_hits_cap",
			body:      "http://a.example http://b.example http://c.example http://d.example",
			wantScore: 60,
			wantFlags: []string{comment.FlagContainsLinks},
		},
		{
			name:      "repeated_characters",
			body:      "this is soooooo good honestly",
			wantScore: 25,
			wantFlags: []string{comment.FlagRepeatedCharacters},
		},
		{
			name:      "five_repeats_do_not_fire",
			body:      "this is sooooo good honestly",
			wantScore: 0,
			wantFlags: []string{},
		},
		{
			name:      "excessive_uppercase",
			body:      "THIS ARTICLE CHANGED MY ENTIRE LIFE",
			wantScore: 18,
			wantFlags: []string{comment.FlagExcessiveUppercase},
		},
		{
			name:      "short_shout_skips_ratio_check",
			body:      "WOW GREAT",
			wantScore: 0,
			wantFlags: []string{},
		},
		{
			name:      "spam_keyword",
			body:      "I made a fortune trading forex last month, ask me how.",
			wantScore: 22,
			wantFlags: []string{comment.FlagSpamKeywords},
		},
		{
			name:      "keyword_inside_word_ignored",
			body:      "The casinogram package handles this case nicely for me.",
			wantScore: 0,
			wantFlags: []string{},
		},
		{
			name:      "too_short",
			body:      "ok",
			wantScore: 14,
			wantFlags: []string{comment.FlagTooShort},
		},
		{
			name:      "whitespace_padding_still_too_short",
			body:      "   +1   ",
			wantScore: 14,
			wantFlags: []string{comment.FlagTooShort},
		},
		{
			name:      "signals_accumulate",
			body:      "CLICK HERE NOW https://spam.example WIN THE LOTTERY TODAY FRIENDS",
			wantScore: 22 + 18 + 22,
			wantFlags: []string{
				comment.FlagContainsLinks,
				comment.FlagExcessiveUppercase,
				comment.FlagSpamKeywords,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, flags := comment.Score(tt.body)

			assert.Equal(t, tt.wantScore, score)
			assert.ElementsMatch(t, tt.wantFlags, flags)
		})
	}
}

/*
TestScore_ThreeLinksReject verifies that a comment carrying three URLs
always reaches the rejection threshold with the link flag present.
*/
func TestScore_ThreeLinksReject(t *testing.T) {
	body := "see https://a.example and https://b.example and https://c.example"

	score, flags := comment.Score(body)

	require.GreaterOrEqual(t, score, comment.RejectThreshold)
	assert.Contains(t, flags, comment.FlagContainsLinks)
}

/*
TestScore_Deterministic verifies repeated scoring of the same body yields
identical results, including flag order.
*/
func TestScore_Deterministic(t *testing.T) {
	body := "AMAZING DEAL!!!!!! visit https://spam.example for free money now"

	firstScore, firstFlags := comment.Score(body)
	for n := 0; n < 10; n++ {
		score, flags := comment.Score(body)
		require.Equal(t, firstScore, score)
		require.Equal(t, firstFlags, flags)
	}
}

/*
TestScore_NonLatinBodyNotShouting ensures the uppercase ratio only counts
cased Latin and Greek letters, so CJK text never trips the signal.
*/
func TestScore_NonLatinBodyNotShouting(t *testing.T) {
	body := strings.Repeat("この記事はとても面白かったです。", 3)

	score, flags := comment.Score(body)

	assert.Zero(t, score)
	assert.Empty(t, flags)
}
