// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package users implements the account and authentication layer of the storefront.

It defines the core domain entity (User, with its embedded shopping cart),
registration and credential verification, the current-user middleware that
bridges sessions to identities, and the login/signup HTTP handlers.

# Architecture

This layer is the "Truth" for accounts. The session layer only ever stores a
user ID; everything about the account itself lives here.
*/
package users

import (
	"time"
)

// # Domain Entities

// CartItem is a single product line in a user's cart.
//
// Only the reference and quantity are stored; prices are snapshotted at
// order time, never in the cart.
type CartItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Quantity  int    `bson:"quantity"   json:"quantity"`
}

// User represents a registered customer (or admin) of the storefront.
type User struct {
	ID           string     `bson:"_id"            json:"id"`
	Email        string     `bson:"email"          json:"email"`
	PasswordHash string     `bson:"password_hash"  json:"-"` // Explicitly omitted from JSON for security.
	Name         string     `bson:"name"           json:"name"`
	Cart         []CartItem `bson:"cart,omitempty" json:"cart,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"     json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"     json:"updated_at"`
}

// # Cart Helpers

// AddToCart increments the quantity for a product, appending a new line if absent.
func (user *User) AddToCart(productID string) {
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart[i].Quantity++
			return
		}
	}
	user.Cart = append(user.Cart, CartItem{ProductID: productID, Quantity: 1})
}

// RemoveFromCart drops a product line entirely.
func (user *User) RemoveFromCart(productID string) {
	kept := user.Cart[:0]
	for _, item := range user.Cart {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	user.Cart = kept
}

// ClearCart empties the cart after an order is placed.
func (user *User) ClearCart() {
	user.Cart = nil
}

// # Field Identifiers

// Form field names for validation in the account domain.
const (
	FieldEmail           = "Email"
	FieldPassword        = "Password"
	FieldConfirmPassword = "Confirm password"
	FieldName            = "Name"
)
