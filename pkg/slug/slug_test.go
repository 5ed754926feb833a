// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/churchwallet/pkg/slug"
)

/*
TestFrom covers accents, punctuation and whitespace.
*/
func TestFrom(t *testing.T) {
	tests := map[string]string{
		"St. Mary's Forane Church": "st-mary-s-forane-church",
		"  Église Saint-Thomas  ":  "eglise-saint-thomas",
		"Unit 12 / Ward":           "unit-12-ward",
		"---":                      "",
		"സെന്റ് മേരീസ്":            "",
	}
	for input, want := range tests {
		assert.Equal(t, want, slug.From(input), input)
	}
}

/*
TestValid accepts exactly what From produces.
*/
func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("st-thomas"))
	assert.True(t, slug.Valid(slug.From("St. George Church, Aruvithura")))
	assert.False(t, slug.Valid(""))
	assert.False(t, slug.Valid("Not A Slug"))
	assert.False(t, slug.Valid("-leading"))
	assert.False(t, slug.Valid("double--hyphen"))
}

/*
TestTruncate never ends on a hyphen.
*/
func TestTruncate(t *testing.T) {
	assert.Equal(t, "st-mary", slug.Truncate("st-mary-s-church", 8))
	assert.Equal(t, "short", slug.Truncate("short", 20))
}
