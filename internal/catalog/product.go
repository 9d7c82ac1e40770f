// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package catalog implements the product side of the storefront.

It defines the Product entity, its persistence contract, the service layer
that enforces ownership on mutations, and two HTTP surfaces: the public shop
pages and the authenticated admin pages.

# Architecture

  - Service: Orchestrates creation, slugging, and owner-only mutation.
  - Repository: Document-store backed, with pagination for list pages.
  - Delivery: Server-rendered HTML; admin forms accept an optional image
    upload prepared by the upload middleware.
*/
package catalog

import (
	"time"
)

// # Domain Entities

// Product represents a single item for sale in the storefront.
type Product struct {
	ID          string    `bson:"_id"                  json:"id"`
	Title       string    `bson:"title"                json:"title"`
	Slug        string    `bson:"slug"                 json:"slug"`
	Description string    `bson:"description"          json:"description"`
	// Price is stored in integer cents. Floats never touch money.
	Price     int64  `bson:"price"                json:"price"`
	ImagePath string `bson:"image_path,omitempty" json:"image_path,omitempty"`
	// UserID references the account that created the product; only the owner
	// may edit or delete it.
	UserID    string    `bson:"user_id"    json:"user_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// # Field Identifiers

// Form field names for validation in the catalog domain.
const (
	FieldTitle       = "Title"
	FieldPrice       = "Price"
	FieldDescription = "Description"
)
