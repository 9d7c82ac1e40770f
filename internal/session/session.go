// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package session implements the server-side session layer of the storefront.

It defines the core Session entity, the pluggable persistence contract with
document-store and Redis backends, the resolution middleware that attaches a
session to every request, and the CSRF token scheme bound to the session secret.

# Architecture

A session is an opaque server-side record referenced by a cookie token. The
cookie only ever carries the session ID; login state, flash messages, and the
CSRF secret all live in the record. Handlers mutate the session through typed
methods, and the middleware persists dirty sessions after the response.
*/
package session

import (
	"context"
	"time"

	"github.com/ngocmai/camellia/internal/platform/constants"
	"github.com/ngocmai/camellia/internal/platform/ctxkey"
	"github.com/ngocmai/camellia/internal/platform/sec"
	"github.com/ngocmai/camellia/pkg/uuidv7"
)

// # Domain Entities

// Flash kinds understood by the layout template.
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// Flash is a one-shot notification stored in the session until the next render.
type Flash struct {
	Kind    string `bson:"kind"    json:"kind"`
	Message string `bson:"message" json:"message"`
}

// Session represents a client's server-side state, referenced by a cookie token.
type Session struct {
	ID         string            `bson:"_id"                json:"id"`
	UserID     string            `bson:"user_id,omitempty"  json:"user_id,omitempty"`
	CSRFSecret string            `bson:"csrf_secret"        json:"csrf_secret"`
	Values     map[string]string `bson:"values,omitempty"   json:"values,omitempty"`
	Flashes    []Flash           `bson:"flashes,omitempty"  json:"flashes,omitempty"`
	CreatedAt  time.Time         `bson:"created_at"         json:"created_at"`
	ExpiresAt  time.Time         `bson:"expires_at"         json:"expires_at"`

	// dirty marks in-request mutations that must be persisted after the
	// response. Never serialized.
	dirty bool
}

// New creates a fresh anonymous session with a random ID and CSRF secret.
//
// ttl <= 0 selects [constants.DefaultSessionTTL] for the server-side record;
// the cookie itself may still be session-only (decided by the middleware).
func New(ttl time.Duration) (*Session, error) {
	secret, err := sec.GenerateSecureToken(constants.CSRFSecretLength)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}

	now := time.Now().UTC()
	return &Session{
		ID:         uuidv7.New(),
		CSRFSecret: secret,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}, nil
}

// # Login State

// IsLoggedIn reports whether the session references an authenticated user.
func (session *Session) IsLoggedIn() bool {
	return session.UserID != ""
}

// Login binds the session to the given user ID.
func (session *Session) Login(userID string) {
	session.UserID = userID
	session.dirty = true
}

// Logout clears the user reference. The middleware still persists the record;
// full destruction (record + cookie) is the Destroy helper's job.
func (session *Session) Logout() {
	session.UserID = ""
	session.dirty = true
}

// # Generic Values

// Set stores an arbitrary string value under key.
func (session *Session) Set(key, value string) {
	if session.Values == nil {
		session.Values = make(map[string]string)
	}
	session.Values[key] = value
	session.dirty = true
}

// Get returns the value stored under key, or "" if absent.
func (session *Session) Get(key string) string {
	return session.Values[key]
}

// # Flash Messages

// AddFlash queues a one-shot message for the next rendered page.
func (session *Session) AddFlash(kind, message string) {
	session.Flashes = append(session.Flashes, Flash{Kind: kind, Message: message})
	session.dirty = true
}

// PopFlashes returns all queued messages and clears them (read-and-clear).
func (session *Session) PopFlashes() []Flash {
	if len(session.Flashes) == 0 {
		return nil
	}
	flashes := session.Flashes
	session.Flashes = nil
	session.dirty = true
	return flashes
}

// # Persistence Bookkeeping

// Dirty reports whether the session has unpersisted mutations.
func (session *Session) Dirty() bool {
	return session.dirty
}

// MarkClean resets the dirty flag after a successful save.
func (session *Session) MarkClean() {
	session.dirty = false
}

// IsExpired reports whether the record's expiry has passed.
func (session *Session) IsExpired(now time.Time) bool {
	return now.After(session.ExpiresAt)
}

// # Context Plumbing

// WithContext returns a new context with the session attached.
func WithContext(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, session)
}

// FromContext retrieves the session from the context.
// Returns nil when resolution has not run (e.g. on the early error path).
func FromContext(ctx context.Context) *Session {
	session, ok := ctx.Value(ctxkey.KeySession).(*Session)
	if !ok {
		return nil
	}
	return session
}
