// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package session

import (
	"context"
)

// # Session Data Access

// Store defines the persistence contract for session records.
//
// # Backends
//
// Two implementations exist: [MongoStore] (default, sessions collection with a
// TTL index) and [RedisStore] (key-per-session with native expiry). The
// composition root picks one based on configuration; nothing else in the
// application knows which backend is active.
type Store interface {

	/*
		Find returns the session with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Session: Hydrated record
		  - error: apperr.NotFound when absent or expired; connectivity errors otherwise
	*/
	Find(context context.Context, id string) (*Session, error)

	/*
		Save persists the session record, creating or replacing it.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, session *Session) error

	/*
		Delete removes the session record (logout / invalidation).

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures (absence is not an error)
	*/
	Delete(context context.Context, id string) error
}
