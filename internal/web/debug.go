// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package web

import (
	"net/http"

	"github.com/ngocmai/camellia/internal/session"
)

// debugSession dumps the caller's session record as JSON.
//
// # Security
//
// The dump includes the CSRF secret and every stored value, so this route is
// registered exclusively in the development environment. Production builds
// answer 404 here like any other unknown path.
func debugSession(writer http.ResponseWriter, request *http.Request) {
	current := session.FromContext(request.Context())
	if current == nil {
		writeJSON(writer, http.StatusOK, map[string]any{"session": nil})
		return
	}

	writeJSON(writer, http.StatusOK, map[string]any{"session": current})
}
