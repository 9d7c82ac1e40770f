// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package users

import (
	"net/http"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/ctxutil"
	"github.com/ngocmai/camellia/internal/platform/render"
	"github.com/ngocmai/camellia/internal/platform/sec"
	"github.com/ngocmai/camellia/internal/session"
)

// # Identity Resolution

// CurrentUser is the identity-hydration middleware.
//
// # Flow
//  1. Read the session attached by the session middleware. An anonymous
//     session (no user reference) passes through untouched.
//  2. Load the referenced account. A dangling reference (deleted account,
//     stale session) also passes through as anonymous; the stale link is
//     cleared from the session so it heals itself.
//  3. Attach a [sec.Identity] to the context for handlers and templates.
//
// # Failure
//
// Only an unreachable store terminates the request, with the generic 500
// page. Every "user not there" case degrades to anonymous.
func CurrentUser(repository Repository, renderer *render.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			current := session.FromContext(request.Context())
			if current == nil || !current.IsLoggedIn() {
				next.ServeHTTP(writer, request)
				return
			}

			user, err := repository.FindByID(request.Context(), current.UserID)
			if err != nil {
				if apperr.IsAppError(err) {
					// Dangling reference. Heal the session and continue anonymous.
					current.Logout()
					next.ServeHTTP(writer, request)
					return
				}
				renderer.Error(writer, request, apperr.Internal(err))
				return
			}

			ctx := ctxutil.WithIdentity(request.Context(), &sec.Identity{
				UserID: user.ID,
				Email:  user.Email,
				Name:   user.Name,
			})
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Route Protection

// RequireAuth guards a route subtree behind authentication.
//
// Anonymous visitors are redirected to the login page with a flash prompt
// instead of receiving a bare 401; this is a browser-facing application.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			if current := session.FromContext(request.Context()); current != nil {
				current.AddFlash(session.FlashError, "Please log in first.")
			}
			http.Redirect(writer, request, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(writer, request)
	})
}
