// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package web

import (
	"embed"
)

// Templates holds every page template, compiled into the binary so the
// deployment artifact is a single file plus the upload directory.
//
//go:embed templates/*.html
var Templates embed.FS
