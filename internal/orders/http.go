// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/ctxutil"
	"github.com/ngocmai/camellia/internal/platform/render"
	"github.com/ngocmai/camellia/internal/session"
)

// # Handler

// Handler implements the authenticated cart and order pages.
type Handler struct {
	orderService *Service
	renderer     *render.Renderer
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, renderer *render.Renderer) *Handler {
	return &Handler{orderService: service, renderer: renderer}
}

// Register attaches the cart and order routes to the given router, which the
// composition root wraps with the authentication gate.
//
// # Endpoints
//   - GET  /cart             : Hydrated cart view.
//   - POST /cart             : Adds one unit of a product.
//   - POST /cart-delete-item : Removes a product line.
//   - POST /create-order     : Checkout; snapshots the cart.
//   - GET  /orders           : Order history.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/cart", handler.cart)
	router.Post("/cart", handler.addToCart)
	router.Post("/cart-delete-item", handler.removeFromCart)
	router.Post("/create-order", handler.createOrder)
	router.Get("/orders", handler.orders)
}

// cart renders the hydrated cart.
func (handler *Handler) cart(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())

	cart, err := handler.orderService.GetCart(request.Context(), identity.UserID)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, "cart", "Your Cart", render.Data{
		"Cart": cart,
	})
}

/*
addToCart puts one unit of the form-posted product into the cart.

POST /cart

Response:
  - 302 → /cart : Added
  - 404         : Unknown product
  - 500         : Infrastructure failures
*/
func (handler *Handler) addToCart(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	productID := request.FormValue("product_id")

	if err := handler.orderService.AddToCart(request.Context(), identity.UserID, productID); err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	http.Redirect(writer, request, "/cart", http.StatusFound)
}

/*
removeFromCart drops the form-posted product line from the cart.

POST /cart-delete-item

Response:
  - 302 → /cart : Removed (idempotent)
  - 500         : Infrastructure failures
*/
func (handler *Handler) removeFromCart(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	productID := request.FormValue("product_id")

	if err := handler.orderService.RemoveFromCart(request.Context(), identity.UserID, productID); err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	http.Redirect(writer, request, "/cart", http.StatusFound)
}

/*
createOrder snapshots the cart into an order.

POST /create-order

Response:
  - 302 → /orders : Order placed
  - 302 → /cart   : Empty cart, with an error flash
  - 500           : Infrastructure failures
*/
func (handler *Handler) createOrder(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())

	_, err := handler.orderService.CreateOrder(request.Context(), identity.UserID)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == apperr.CodeValidationError {
			if current := session.FromContext(request.Context()); current != nil {
				current.AddFlash(session.FlashError, appError.Message)
			}
			http.Redirect(writer, request, "/cart", http.StatusFound)
			return
		}
		handler.renderer.Error(writer, request, err)
		return
	}

	if current := session.FromContext(request.Context()); current != nil {
		current.AddFlash(session.FlashSuccess, "Order placed. Thank you!")
	}
	http.Redirect(writer, request, "/orders", http.StatusFound)
}

// orders renders the user's order history.
func (handler *Handler) orders(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())

	placed, err := handler.orderService.ListOrders(request.Context(), identity.UserID)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, "orders", "Your Orders", render.Data{
		"Orders": placed,
	})
}
