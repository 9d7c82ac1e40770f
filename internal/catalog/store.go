// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package catalog

import (
	"context"

	"github.com/ngocmai/camellia/pkg/pagination"
)

// # Product Data Access

// Repository defines the data access contract for products.
type Repository interface {

	/*
		FindByID returns the product with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Product: Hydrated entity
		  - error: apperr.NotFound when absent, or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Product, error)

	/*
		FindByIDs returns the products matching the given IDs.

		Description: Used to hydrate cart and order lines. Missing IDs are
		silently omitted from the result; the caller decides what a shrunken
		result means.

		Parameters:
		  - context: context.Context
		  - ids: []string

		Returns:
		  - []*Product: Entities found, in no guaranteed order
		  - error: Retrieval failures
	*/
	FindByIDs(context context.Context, ids []string) ([]*Product, error)

	/*
		List returns one page of the full catalog, newest first.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*Product: One page of entities
		  - int: Total product count for pagination metadata
		  - error: Retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]*Product, int, error)

	/*
		ListByUser returns one page of the products owned by userID.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []*Product: One page of entities
		  - int: Total count owned by the user
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string, params pagination.Params) ([]*Product, int, error)

	/*
		Create persists a brand-new product.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: apperr.Conflict on a duplicate slug, or persistence failures
	*/
	Create(context context.Context, product *Product) error

	/*
		Update persists changes to mutable product fields.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: apperr.NotFound when absent, or persistence failures
	*/
	Update(context context.Context, product *Product) error

	/*
		Delete removes the product entirely.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound when absent, or persistence failures
	*/
	Delete(context context.Context, id string) error
}
