// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package orders

import (
	"context"
)

// # Order Data Access

// Repository defines the data access contract for orders.
//
// Orders are append-only: there is deliberately no update or delete.
type Repository interface {

	/*
		Create persists a completed checkout snapshot.

		Parameters:
		  - context: context.Context
		  - order: *Order

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, order *Order) error

	/*
		ListByUser returns every order belonging to userID, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Order: Hydrated entities
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string) ([]*Order, error)
}
