// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngocmai/camellia/pkg/pagination"
)

/*
TestFromRequest verifies query parsing and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/products", 1, pagination.DefaultLimit},
		{"explicit", "/products?page=3&limit=24", 3, 24},
		{"zero_page_clamped", "/products?page=0", 1, pagination.DefaultLimit},
		{"negative_clamped", "/products?page=-2&limit=-5", 1, pagination.DefaultLimit},
		{"excessive_limit_clamped", "/products?limit=5000", 1, pagination.DefaultLimit},
		{"garbage_ignored", "/products?page=abc&limit=xyz", 1, pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", tt.url, nil))

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the skip calculation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 12}.Offset())
	assert.Equal(t, 12, pagination.Params{Page: 2, Limit: 12}.Offset())
	assert.Equal(t, 48, pagination.Params{Page: 5, Limit: 12}.Offset())
}

/*
TestNewMeta verifies total page derivation and navigation helpers.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 12, 25)

	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasPrev())
	assert.True(t, meta.HasNext())
	assert.Equal(t, 1, meta.Prev())
	assert.Equal(t, 3, meta.Next())

	last := pagination.NewMeta(3, 12, 25)
	assert.False(t, last.HasNext())

	empty := pagination.NewMeta(1, 12, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext())
}
