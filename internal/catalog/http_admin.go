// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/ctxutil"
	"github.com/ngocmai/camellia/internal/platform/render"
	"github.com/ngocmai/camellia/internal/platform/validate"
	"github.com/ngocmai/camellia/internal/session"
	"github.com/ngocmai/camellia/internal/upload"
	"github.com/ngocmai/camellia/pkg/pagination"
)

// # Admin Handler

// AdminHandler implements the authenticated product-management pages.
//
// # Scope
//
// Every route here is mounted behind the authentication gate, so the request
// identity is always present. Ownership (may THIS user touch THIS product) is
// still enforced per operation by the service.
type AdminHandler struct {
	catalogService *Service
	renderer       *render.Renderer
}

// NewAdminHandler constructs a new [AdminHandler] with its dependencies.
func NewAdminHandler(service *Service, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{catalogService: service, renderer: renderer}
}

// Routes returns a [chi.Router] configured with the admin routes.
//
// # Endpoints
//   - GET  /products          : Products owned by the current user.
//   - GET  /add-product       : Empty product form.
//   - POST /add-product       : Creates a product (optional image upload).
//   - GET  /edit-product/{id} : Pre-filled product form.
//   - POST /edit-product/{id} : Applies the edit.
//   - POST /delete-product    : Deletes a product by form-posted ID.
func (handler *AdminHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/products", handler.list)
	router.Get("/add-product", handler.addForm)
	router.Post("/add-product", handler.add)
	router.Get("/edit-product/{id}", handler.editForm)
	router.Post("/edit-product/{id}", handler.edit)
	router.Post("/delete-product", handler.remove)

	return router
}

// list renders the current user's products.
func (handler *AdminHandler) list(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	params := pagination.FromRequest(request)

	products, meta, err := handler.catalogService.GetOwnedPage(request.Context(), identity.UserID, params)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, "admin-products", "Admin Products", render.Data{
		"Products":   products,
		"Pagination": meta,
	})
}

// addForm renders the empty product form.
func (handler *AdminHandler) addForm(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Page(writer, request, http.StatusOK, "edit-product", "Add Product", render.Data{
		"Editing": false,
	})
}

/*
add creates a new product from the admin form.

POST /admin/add-product

Description: Validates the form, picks up the image prepared by the upload
middleware if one was accepted, and persists the product under the current
user's ownership.

Request:
  - Form: title, price (decimal), description
  - Multipart: image (optional; silently dropped when not an accepted type)

Response:
  - 302 → /admin/products    : Created
  - 302 → /admin/add-product : Validation failure, with an error flash
  - 500                      : Infrastructure failures
*/
func (handler *AdminHandler) add(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())

	input, err := handler.parseProductForm(request)
	if err != nil {
		handler.flashAndRedirect(writer, request, err, "/admin/add-product")
		return
	}

	// The middleware only attaches files that passed the type check; an
	// absent file simply means the product ships without an image.
	imagePath := ""
	if file := upload.FromContext(request.Context()); file != nil {
		imagePath = "/images/" + file.StoredName
	}

	_, err = handler.catalogService.Create(request.Context(), CreateInput{
		Title:       input.title,
		Description: input.description,
		Price:       input.price,
		ImagePath:   imagePath,
		OwnerID:     identity.UserID,
	})
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.flashSuccess(request, "Product created.")
	http.Redirect(writer, request, "/admin/products", http.StatusFound)
}

// editForm renders the pre-filled product form. Non-owners get the 403 path.
func (handler *AdminHandler) editForm(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	id := chi.URLParam(request, "id")

	product, err := handler.catalogService.Get(request.Context(), id)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}
	if product.UserID != identity.UserID {
		handler.renderer.Error(writer, request, apperr.Forbidden("You do not own this product"))
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, "edit-product", "Edit Product", render.Data{
		"Editing": true,
		"Product": product,
	})
}

/*
edit applies an edit-product submission.

POST /admin/edit-product/{id}

Description: Validates the form and delegates to the service, which enforces
ownership. A newly uploaded image replaces the old path; no upload keeps it.

Response:
  - 302 → /admin/products : Updated
  - 302 → same form       : Validation failure, with an error flash
  - 403 / 404 / 500       : Ownership, missing product, infrastructure
*/
func (handler *AdminHandler) edit(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	id := chi.URLParam(request, "id")

	input, err := handler.parseProductForm(request)
	if err != nil {
		handler.flashAndRedirect(writer, request, err, "/admin/edit-product/"+id)
		return
	}

	imagePath := ""
	if file := upload.FromContext(request.Context()); file != nil {
		imagePath = "/images/" + file.StoredName
	}

	_, err = handler.catalogService.Update(request.Context(), UpdateInput{
		ID:          id,
		Title:       input.title,
		Description: input.description,
		Price:       input.price,
		ImagePath:   imagePath,
		OwnerID:     identity.UserID,
	})
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.flashSuccess(request, "Product updated.")
	http.Redirect(writer, request, "/admin/products", http.StatusFound)
}

/*
remove deletes a product identified by the form-posted ID.

POST /admin/delete-product

Response:
  - 302 → /admin/products : Deleted
  - 403 / 404 / 500       : Ownership, missing product, infrastructure
*/
func (handler *AdminHandler) remove(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	id := request.FormValue("product_id")

	if err := handler.catalogService.Delete(request.Context(), id, identity.UserID); err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.flashSuccess(request, "Product deleted.")
	http.Redirect(writer, request, "/admin/products", http.StatusFound)
}

// # Form Parsing

// productForm holds the parsed and validated product form values.
type productForm struct {
	title       string
	description string
	price       int64
}

// parseProductForm validates the shared add/edit form.
func (handler *AdminHandler) parseProductForm(request *http.Request) (*productForm, error) {
	title := strings.TrimSpace(request.FormValue("title"))
	description := strings.TrimSpace(request.FormValue("description"))
	rawPrice := strings.TrimSpace(request.FormValue("price"))

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		Required(FieldDescription, description).
		Required(FieldPrice, rawPrice)

	price, priceErr := ParsePrice(rawPrice)
	if rawPrice != "" && priceErr != nil {
		return nil, apperr.ValidationError("Price must be a positive decimal amount")
	}
	if rawPrice != "" {
		validator.Positive(FieldPrice, price)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &productForm{title: title, description: description, price: price}, nil
}

// ParsePrice converts a decimal form amount ("19.99") into integer cents.
//
// Floats are deliberately avoided: the string is split on the decimal point
// and combined with integer arithmetic only.
func ParsePrice(raw string) (int64, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "$")

	whole, fraction, _ := strings.Cut(raw, ".")

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars < 0 {
		return 0, apperr.ValidationError("Price must be a positive decimal amount")
	}

	cents := int64(0)
	if fraction != "" {
		if len(fraction) > 2 {
			return 0, apperr.ValidationError("Price supports at most two decimal places")
		}
		// Pad "5" to "50" so that 19.5 means 19.50.
		for len(fraction) < 2 {
			fraction += "0"
		}
		cents, err = strconv.ParseInt(fraction, 10, 64)
		if err != nil || cents < 0 {
			return 0, apperr.ValidationError("Price must be a positive decimal amount")
		}
	}

	return dollars*100 + cents, nil
}

// # Flash Helpers

// flashAndRedirect queues the error as a flash and bounces back to target.
func (handler *AdminHandler) flashAndRedirect(writer http.ResponseWriter, request *http.Request, err error, target string) {
	if current := session.FromContext(request.Context()); current != nil {
		message := "Invalid input"
		if appError := apperr.As(err); appError != nil {
			message = appError.Message
		}
		current.AddFlash(session.FlashError, message)
	}

	http.Redirect(writer, request, target, http.StatusFound)
}

// flashSuccess queues a success notification for the next page.
func (handler *AdminHandler) flashSuccess(request *http.Request, message string) {
	if current := session.FromContext(request.Context()); current != nil {
		current.AddFlash(session.FlashSuccess, message)
	}
}
