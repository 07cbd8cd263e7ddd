// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/pkg/slug"
)

/*
TestFrom checks accent folding, separators and hyphen collapsing.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Science Fiction", "science-fiction"},
		{"Café Noir", "cafe-noir"},
		{"  Rock -- & -- Roll  ", "rock-roll"},
		{"Арт-хаус", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

/*
TestFromMax checks truncation never leaves a trailing hyphen.
*/
func TestFromMax(t *testing.T) {
	assert.Equal(t, "science", slug.FromMax("Science Fiction", 8))
	assert.Equal(t, "science-fiction", slug.FromMax("Science Fiction", 50))
	assert.Equal(t, "science-fiction", slug.FromMax("Science Fiction", 0))
}

/*
TestValid checks the accepted alphabet for client-supplied slugs.
*/
func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("sci-fi"))
	assert.True(t, slug.Valid("Sci_Fi-2"))
	assert.False(t, slug.Valid(""))
	assert.False(t, slug.Valid("sci fi"))
	assert.False(t, slug.Valid("драма"))
}
