// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package orders

import (
	"context"

	"github.com/ngocmai/camellia/internal/catalog"
	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/users"
	"github.com/ngocmai/camellia/pkg/uuidv7"
)

// # Service

// Service implements cart and checkout use cases.
type Service struct {
	orderRepository   Repository
	userRepository    users.Repository
	productRepository catalog.Repository
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(orderRepo Repository, userRepo users.Repository, productRepo catalog.Repository) *Service {
	return &Service{
		orderRepository:   orderRepo,
		userRepository:    userRepo,
		productRepository: productRepo,
	}
}

// # Cart

// CartLine is one hydrated cart row: the referenced product plus quantity.
type CartLine struct {
	Product  *catalog.Product
	Quantity int
}

// Subtotal returns the line total in cents.
func (line CartLine) Subtotal() int64 {
	return line.Product.Price * int64(line.Quantity)
}

// Cart is the hydrated view of a user's cart.
type Cart struct {
	Lines []CartLine
	Total int64
}

/*
GetCart hydrates the user's stored cart against the current catalog.

Description: Cart entries whose product has since been deleted are silently
dropped from the view and pruned from the stored cart, so the cart heals
itself instead of erroring.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Cart: Hydrated lines with the running total
  - error: Retrieval failures
*/
func (service *Service) GetCart(context context.Context, userID string) (*Cart, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	cart, pruned, err := service.hydrate(context, user)
	if err != nil {
		return nil, err
	}

	// Persist the pruned cart so dead references do not linger.
	if pruned {
		if err := service.userRepository.UpdateCart(context, userID, user.Cart); err != nil {
			return nil, err
		}
	}

	return cart, nil
}

/*
AddToCart puts one unit of a product into the user's cart.

Parameters:
  - context: context.Context
  - userID: string
  - productID: string

Returns:
  - error: NotFound (unknown product) or persistence failures
*/
func (service *Service) AddToCart(context context.Context, userID, productID string) error {

	// Reject dead references at the door; the cart only ever grows with
	// products that exist right now.
	if _, err := service.productRepository.FindByID(context, productID); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	user.AddToCart(productID)
	return service.userRepository.UpdateCart(context, userID, user.Cart)
}

/*
RemoveFromCart drops a product line from the user's cart.

Description: Removing something that is not in the cart is a no-op, not an
error; the outcome the user asked for already holds.

Parameters:
  - context: context.Context
  - userID: string
  - productID: string

Returns:
  - error: Persistence failures
*/
func (service *Service) RemoveFromCart(context context.Context, userID, productID string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	user.RemoveFromCart(productID)
	return service.userRepository.UpdateCart(context, userID, user.Cart)
}

// # Checkout

/*
CreateOrder snapshots the cart into an immutable order and clears the cart.

Description: Titles and prices are copied into the order at this moment;
later catalog edits or deletions never affect placed orders.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Order: The placed order
  - error: ValidationError (empty cart) or persistence failures
*/
func (service *Service) CreateOrder(context context.Context, userID string) (*Order, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	cart, _, err := service.hydrate(context, user)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, apperr.ValidationError("Your cart is empty")
	}

	order := &Order{
		ID:     uuidv7.New(),
		UserID: userID,
		Total:  cart.Total,
	}
	for _, line := range cart.Lines {
		order.Items = append(order.Items, OrderItem{
			ProductID: line.Product.ID,
			Title:     line.Product.Title,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		})
	}

	if err := service.orderRepository.Create(context, order); err != nil {
		return nil, err
	}

	// Clear the cart only after the order is safely persisted. A failure here
	// leaves a stale cart, which is recoverable; a lost order is not.
	user.ClearCart()
	if err := service.userRepository.UpdateCart(context, userID, user.Cart); err != nil {
		return nil, err
	}

	return order, nil
}

/*
ListOrders returns the user's order history, newest first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Order: Hydrated entities
  - error: Retrieval failures
*/
func (service *Service) ListOrders(context context.Context, userID string) ([]*Order, error) {
	return service.orderRepository.ListByUser(context, userID)
}

// hydrate resolves the stored cart references against the catalog.
//
// Dangling references are dropped from both the returned view and the
// user's in-memory cart; pruned reports whether any were found.
func (service *Service) hydrate(context context.Context, user *users.User) (*Cart, bool, error) {
	ids := make([]string, 0, len(user.Cart))
	for _, item := range user.Cart {
		ids = append(ids, item.ProductID)
	}

	products, err := service.productRepository.FindByIDs(context, ids)
	if err != nil {
		return nil, false, err
	}

	byID := make(map[string]*catalog.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	cart := &Cart{}
	kept := user.Cart[:0]
	pruned := false
	for _, item := range user.Cart {
		product, ok := byID[item.ProductID]
		if !ok {
			pruned = true
			continue
		}
		kept = append(kept, item)
		line := CartLine{Product: product, Quantity: item.Quantity}
		cart.Lines = append(cart.Lines, line)
		cart.Total += line.Subtotal()
	}
	user.Cart = kept

	return cart, pruned, nil
}
