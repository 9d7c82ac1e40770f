// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (session, identity,
// request ID, logger, uploaded file). Using a private, unexported type for keys
// prevents collisions with third-party packages that might also use context
// for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
//
// # Collision Prevention
//
// Even if another package uses "request_id" as a string key, it will not
// collide with this key type because Go's [context.Context] uses both the
// value AND the type for lookups.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyIdentity is the context key for the attached user identity ([sec.Identity]).
	KeyIdentity key = "identity"

	// KeyIdentitySlot is the context key for the mutable identity slot that
	// reports the resolved identity back to earlier middleware stages.
	KeyIdentitySlot key = "identity_slot"

	// KeySession is the context key for the resolved [*session.Session].
	KeySession key = "session"

	// KeyUploadedFile is the context key for the accepted [*upload.UploadedFile].
	KeyUploadedFile key = "uploaded_file"
)
