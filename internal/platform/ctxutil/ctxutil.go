// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/ngocmai/camellia/internal/platform/ctxkey"
	"github.com/ngocmai/camellia/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// identitySlot carries the resolved identity back to stages that wrapped the
// request before it was attached. The access logger finishes after the
// handler, but its context predates the current-user stage; the slot is the
// only channel pointing back up the chain.
type identitySlot struct {
	identity *sec.Identity
}

// WithIdentitySlot installs an empty identity slot into the context.
func WithIdentitySlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentitySlot, &identitySlot{})
}

// WithIdentity returns a new context with the provided user identity attached.
// When an identity slot is present, it is filled as well, so contexts that
// predate the attachment can still resolve the identity afterwards.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	if slot, ok := ctx.Value(ctxkey.KeyIdentitySlot).(*identitySlot); ok {
		slot.identity = identity
	}
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// GetIdentity retrieves the [*sec.Identity] from the [context.Context].
// Returns nil for anonymous requests. Contexts that only carry the slot
// resolve through it.
func GetIdentity(ctx context.Context) *sec.Identity {
	if identity, ok := ctx.Value(ctxkey.KeyIdentity).(*sec.Identity); ok {
		return identity
	}
	if slot, ok := ctx.Value(ctxkey.KeyIdentitySlot).(*identitySlot); ok {
		return slot.identity
	}
	return nil
}
