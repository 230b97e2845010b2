// Copyright (c) 2026 Litho Press. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lithopress/litho/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Big Launch", "big-launch"},
		{"accents", "Café Münchner", "cafe-munchner"},
		{"punctuation", "Hello, World! (2024)", "hello-world-2024"},
		{"multi_spaces", "a   b", "a-b"},
		{"leading_trailing", "  --edge--  ", "edge"},
		{"already_slug", "already-a-slug", "already-a-slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
