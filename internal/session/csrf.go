// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/constants"
	"github.com/ngocmai/camellia/internal/platform/render"
)

// # CSRF Protection
//
// The token is derived from the per-session secret, never persisted on its
// own, and dies with the session. Pages embed it as a hidden form field; the
// middleware recomputes and compares it on every state-changing request.

// CSRFToken derives the anti-forgery token for a session.
//
// token = hex(HMAC-SHA256(csrf_secret, session_id))
//
// Binding the MAC to the session ID means a token lifted from one session is
// useless against another, without storing anything beyond the secret.
func CSRFToken(session *Session) string {
	if session == nil {
		return ""
	}

	mac := hmac.New(sha256.New, []byte(session.CSRFSecret))
	mac.Write([]byte(session.ID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCSRF validates the submitted token on state-changing requests.
//
// # Flow
//  1. Safe methods (GET, HEAD, OPTIONS) pass through untouched.
//  2. The token is read from the "_csrf" form field, falling back to the
//     X-CSRF-Token header.
//  3. Mismatch or absence rejects the request with 403 before any route
//     handler runs.
//
// Must be mounted after [Resolve]; a missing session (early error path)
// rejects state-changing requests outright.
func VerifyCSRF(renderer *render.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Only state-changing methods are validated.
			switch request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(writer, request)
				return
			}

			current := FromContext(request.Context())
			if current == nil {
				renderer.Error(writer, request, apperr.Forbidden("Missing session"))
				return
			}

			// 2. Form field first, header as the programmatic fallback.
			// ParseForm is a no-op when the upload middleware already parsed
			// the multipart body.
			submitted := request.FormValue(constants.CSRFFieldName)
			if submitted == "" {
				submitted = request.Header.Get(constants.CSRFHeaderName)
			}

			// 3. Constant-time comparison against the recomputed token.
			expected := CSRFToken(current)
			if submitted == "" || !hmac.Equal([]byte(submitted), []byte(expected)) {
				renderer.Error(writer, request, apperr.Forbidden("Invalid CSRF token"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
