// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package orders implements the cart and checkout side of the storefront.

The cart itself is embedded in the user document (it holds references and
quantities only); an order is an immutable snapshot taken at checkout time,
with titles and prices copied so later catalog edits never rewrite history.

# Architecture

  - Service: Bridges three repositories: users (cart), catalog (hydration),
    and orders (snapshots).
  - Delivery: Authenticated HTML pages for the cart and the order history.
*/
package orders

import (
	"time"
)

// # Domain Entities

// OrderItem is one line of an order, snapshotted at checkout.
type OrderItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Title     string `bson:"title"      json:"title"`
	// Price is the per-unit price in cents at the time of checkout.
	Price    int64 `bson:"price"    json:"price"`
	Quantity int   `bson:"quantity" json:"quantity"`
}

// Subtotal returns the line total in cents.
func (item OrderItem) Subtotal() int64 {
	return item.Price * int64(item.Quantity)
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID     string      `bson:"_id"     json:"id"`
	UserID string      `bson:"user_id" json:"user_id"`
	Items  []OrderItem `bson:"items"   json:"items"`
	// Total is the order total in cents, fixed at checkout.
	Total     int64     `bson:"total"      json:"total"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
