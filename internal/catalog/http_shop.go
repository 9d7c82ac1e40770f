// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ngocmai/camellia/internal/platform/render"
	"github.com/ngocmai/camellia/pkg/pagination"
)

// # Shop Handler

// featuredCount is the number of latest products shown on the landing page.
const featuredCount = 8

// ShopHandler implements the public, read-only product pages.
type ShopHandler struct {
	catalogService *Service
	renderer       *render.Renderer
}

// NewShopHandler constructs a new [ShopHandler] with its dependencies.
func NewShopHandler(service *Service, renderer *render.Renderer) *ShopHandler {
	return &ShopHandler{catalogService: service, renderer: renderer}
}

// Register attaches the public shop routes to the root router.
//
// # Endpoints
//   - GET /              : Landing page with the latest products.
//   - GET /products      : Full catalog, paginated.
//   - GET /products/{id} : Single product detail.
func (handler *ShopHandler) Register(router chi.Router) {
	router.Get("/", handler.index)
	router.Get("/products", handler.list)
	router.Get("/products/{id}", handler.detail)
}

// index renders the landing page with the newest arrivals.
func (handler *ShopHandler) index(writer http.ResponseWriter, request *http.Request) {
	products, _, err := handler.catalogService.GetPage(request.Context(), pagination.Params{
		Page:  1,
		Limit: featuredCount,
	})
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, "index", "Shop", render.Data{
		"Products": products,
	})
}

// list renders one page of the full catalog.
func (handler *ShopHandler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	products, meta, err := handler.catalogService.GetPage(request.Context(), params)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, "product-list", "All Products", render.Data{
		"Products":   products,
		"Pagination": meta,
	})
}

// detail renders a single product page. Unknown IDs get the 404 page.
func (handler *ShopHandler) detail(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	product, err := handler.catalogService.Get(request.Context(), id)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, "product-detail", product.Title, render.Data{
		"Product": product,
	})
}
