// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/constants"
	"github.com/ngocmai/camellia/internal/platform/ctxutil"
	"github.com/ngocmai/camellia/internal/platform/render"
)

// # Middleware Configuration

// Config holds the dependencies and cookie policy for the session middleware.
type Config struct {
	// Store is the active persistence backend.
	Store Store

	// Renderer renders the failure page when the store is unreachable.
	Renderer *render.Renderer

	// Secret keys the cookie signature. A forged or tampered cookie value is
	// discarded before the store is ever consulted.
	Secret string

	// CookieTTL controls the cookie Max-Age. Zero produces a session-only
	// cookie (dropped when the browser closes); the server-side record still
	// expires on its own schedule.
	CookieTTL time.Duration

	// CookieSecure marks the cookie Secure (HTTPS-only). Enabled in production.
	CookieSecure bool
}

// # Session Resolution

// Resolve is the session-resolution middleware.
//
// # Flow
//  1. Read the session cookie. If present, load the record from the store.
//  2. If the cookie is absent or references an expired/unknown record, create
//     a fresh anonymous session and set the cookie on the response.
//  3. Attach the session to the request context.
//  4. After the handler, persist the session if it was mutated.
//
// # Failure
//
// An unreachable store is an infrastructure-class error: the request is
// terminated with the generic 500 page. A dangling cookie is NOT an error;
// the client silently gets a new session.
func Resolve(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			logger := ctxutil.GetLogger(request.Context())

			var current *Session

			// 1. Try the cookie first. A bad signature falls through to a
			// fresh session exactly like an unknown ID.
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
				if id, ok := cfg.verify(cookie.Value); ok {
					found, err := cfg.Store.Find(request.Context(), id)
					switch {
					case err == nil:
						current = found
					case apperr.IsAppError(err):
						// Unknown or expired ID: fall through to a fresh session.
					default:
						cfg.Renderer.Error(writer, request, apperr.Internal(err))
						return
					}
				}
			}

			// 2. No usable session: create one and hand the cookie out now,
			// before any response bytes are written.
			if current == nil {
				fresh, err := New(cfg.CookieTTL)
				if err != nil {
					cfg.Renderer.Error(writer, request, apperr.Internal(err))
					return
				}
				if err := cfg.Store.Save(request.Context(), fresh); err != nil {
					cfg.Renderer.Error(writer, request, apperr.Internal(err))
					return
				}

				http.SetCookie(writer, cfg.cookie(fresh.ID))
				current = fresh
			}

			// 3. Attach and dispatch.
			ctx := WithContext(request.Context(), current)
			next.ServeHTTP(writer, request.WithContext(ctx))

			// 4. Persist mutations. The response is already on the wire, so a
			// failure here can only be logged; the next request degrades to a
			// fresh session at worst.
			if current.Dirty() {
				if err := cfg.Store.Save(request.Context(), current); err != nil {
					logger.ErrorContext(request.Context(), "session_save_failed",
						slog.String("session_id", current.ID),
						slog.Any("error", err),
					)
				}
			}
		})
	}
}

// Rotate replaces the session ID in place, keeping the record's contents.
//
// Called on login so an ID issued (or planted) before authentication never
// survives into the authenticated session. The context session is updated in
// place, so the caller's pointer and the post-handler persist both see the
// new record. Must run before any response bytes are written.
func Rotate(writer http.ResponseWriter, request *http.Request, cfg Config) error {
	current := FromContext(request.Context())
	if current == nil {
		return nil
	}

	fresh, err := New(cfg.CookieTTL)
	if err != nil {
		return err
	}
	fresh.UserID = current.UserID
	fresh.Values = current.Values
	fresh.Flashes = current.Flashes

	if err := cfg.Store.Save(request.Context(), fresh); err != nil {
		return err
	}
	if err := cfg.Store.Delete(request.Context(), current.ID); err != nil {
		return err
	}

	http.SetCookie(writer, cfg.cookie(fresh.ID))
	*current = *fresh
	return nil
}

// Destroy removes the session record and expires the client cookie.
//
// Used by the logout handler. The next request will be issued a fresh
// anonymous session by [Resolve].
func Destroy(writer http.ResponseWriter, request *http.Request, store Store) error {
	current := FromContext(request.Context())
	if current == nil {
		return nil
	}

	if err := store.Delete(request.Context(), current.ID); err != nil {
		return err
	}

	// Expire the cookie client-side.
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	// Make sure the post-handler save does not resurrect the record.
	current.Logout()
	current.MarkClean()
	return nil
}

// # Cookie Signing
//
// The cookie value is "<id>.<hex HMAC-SHA256(secret, id)>". The signature
// proves the ID was issued by this server; the record itself stays opaque and
// server-side.

// sign produces the signed cookie value for a session ID.
func (cfg Config) sign(sessionID string) string {
	mac := hmac.New(sha256.New, []byte(cfg.Secret))
	mac.Write([]byte(sessionID))
	return sessionID + "." + hex.EncodeToString(mac.Sum(nil))
}

// verify checks a cookie value's signature and extracts the session ID.
func (cfg Config) verify(value string) (string, bool) {
	id, _, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}

	if !hmac.Equal([]byte(cfg.sign(id)), []byte(value)) {
		return "", false
	}

	return id, true
}

// cookie builds the session cookie with the configured policy.
func (cfg Config) cookie(sessionID string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    cfg.sign(sessionID),
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	// Zero TTL keeps Max-Age unset: a session-only cookie.
	if cfg.CookieTTL > 0 {
		cookie.MaxAge = int(cfg.CookieTTL.Seconds())
	}

	return cookie
}
