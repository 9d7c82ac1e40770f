// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package upload_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngocmai/camellia/internal/upload"
)

/*
TestAllowedMIME verifies the image accept-list, including the unregistered
"image/jpg" alias browsers still send.
*/
func TestAllowedMIME(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		allowed  bool
	}{
		{"png", "image/png", true},
		{"jpeg", "image/jpeg", true},
		{"jpg_alias", "image/jpg", true},
		{"png_with_params", "image/png; charset=binary", true},
		{"gif", "image/gif", false},
		{"pdf", "application/pdf", false},
		{"svg", "image/svg+xml", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, upload.AllowedMIME(tt.mimeType))
		})
	}
}

/*
TestStoredName verifies the timestamped, filesystem-safe naming scheme.
*/
func TestStoredName(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"plain", "teapot.png", "2026-03-14T09-26-53Z-teapot.png"},
		{"path_stripped", "../../etc/passwd", "2026-03-14T09-26-53Z-passwd"},
		{"windows_path_stripped", `C:\Users\mai\cat.jpg`, "2026-03-14T09-26-53Z-cat.jpg"},
		{"empty_falls_back", "", "2026-03-14T09-26-53Z-upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := upload.StoredName(tt.original, now)

			assert.Equal(t, tt.want, got)
			// The generated name must never contain colons or separators.
			assert.NotContains(t, got, ":")
			assert.NotContains(t, got, "/")
		})
	}
}

/*
TestStoredName_SameSecondCollision documents that two uploads of the same
file within one second produce the same name: last write wins.
*/
func TestStoredName_SameSecondCollision(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	first := upload.StoredName("photo.jpg", now)
	second := upload.StoredName("photo.jpg", now.Add(500*time.Millisecond))

	assert.Equal(t, first, second)
}
