// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package sec groups the security primitives of the platform.

It covers password hashing (bcrypt), secure random token generation, and the
lightweight per-request identity attached by the current-user middleware.

Architecture:

  - Hashing: Constant-time bcrypt comparison to resist timing attacks.
  - Identity: A transport-neutral snapshot of the logged-in user, decoupled
    from the full user entity so platform packages never import domain code.
*/
package sec

// Identity is the minimal view of an authenticated user carried in the
// request context.
//
// # Why not the full User entity?
//
// Platform-level consumers (render layer, logging) only need stable
// identifiers. Handlers that need profile or cart data load the entity
// through the user repository instead.
type Identity struct {
	// UserID is the account's UUIDv7.
	UserID string
	// Email is the login email, used for display and log correlation.
	Email string
	// Name is the display name rendered in the page header.
	Name string
}
