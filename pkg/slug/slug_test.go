// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngocmai/camellia/pkg/slug"
)

/*
TestFrom verifies the slug pipeline: accent removal, lowercasing, and
hyphen normalization.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Ceramic Teapot", "ceramic-teapot"},
		{"accents", "Café au Lait Mug", "cafe-au-lait-mug"},
		{"punctuation", "Tea & Co. — Deluxe!", "tea-co-deluxe"},
		{"multiple_spaces", "a   b", "a-b"},
		{"leading_trailing", "  padded  ", "padded"},
		{"numbers", "Set of 6 Cups", "set-of-6-cups"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
