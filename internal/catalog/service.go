// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package catalog

import (
	"context"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/pkg/pagination"
	"github.com/ngocmai/camellia/pkg/slug"
	"github.com/ngocmai/camellia/pkg/uuidv7"
)

// # Service

// Service implements catalog use cases and enforces ownership on mutations.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Reads

// Get returns a single product by ID.
func (service *Service) Get(context context.Context, id string) (*Product, error) {
	return service.repository.FindByID(context, id)
}

// GetPage returns one page of the public catalog.
func (service *Service) GetPage(context context.Context, params pagination.Params) ([]*Product, pagination.Meta, error) {
	products, total, err := service.repository.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return products, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// GetOwnedPage returns one page of the products created by ownerID.
func (service *Service) GetOwnedPage(context context.Context, ownerID string, params pagination.Params) ([]*Product, pagination.Meta, error) {
	products, total, err := service.repository.ListByUser(context, ownerID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return products, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// # Mutations

// CreateInput holds the data required to list a new product.
type CreateInput struct {
	Title       string
	Description string
	Price       int64
	ImagePath   string
	OwnerID     string
}

/*
Create slugs, identifies, and persists a brand-new product.

Description: The slug is derived from the title; when two owners pick the
same title, the slug is disambiguated with the tail of the product's
time-sortable ID rather than failing the whole submission.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Product: Created entity
  - error: Persistence failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Product, error) {
	product := &Product{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
		Price:       input.Price,
		ImagePath:   input.ImagePath,
		UserID:      input.OwnerID,
	}

	err := service.repository.Create(context, product)
	if err == nil {
		return product, nil
	}

	// Slug collision: retry once with a disambiguating suffix.
	if appError := apperr.As(err); appError != nil && appError.Code == apperr.CodeConflict {
		product.Slug = product.Slug + "-" + product.ID[len(product.ID)-6:]
		if err := service.repository.Create(context, product); err != nil {
			return nil, err
		}
		return product, nil
	}

	return nil, err
}

// UpdateInput holds the data for an edit-product submission.
//
// An empty ImagePath means "keep the current image"; the admin form treats a
// missing upload as no change, never as image removal.
type UpdateInput struct {
	ID          string
	Title       string
	Description string
	Price       int64
	ImagePath   string
	OwnerID     string
}

/*
Update applies an edit-product submission, enforcing ownership.

Parameters:
  - context: context.Context
  - input: UpdateInput

Returns:
  - *Product: Updated entity
  - error: NotFound, Forbidden (non-owner), or persistence failures
*/
func (service *Service) Update(context context.Context, input UpdateInput) (*Product, error) {
	product, err := service.repository.FindByID(context, input.ID)
	if err != nil {
		return nil, err
	}

	// Only the creating account may mutate a product.
	if product.UserID != input.OwnerID {
		return nil, apperr.Forbidden("You do not own this product")
	}

	if product.Title != input.Title {
		product.Slug = slug.From(input.Title)
	}
	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	if input.ImagePath != "" {
		product.ImagePath = input.ImagePath
	}

	if err := service.repository.Update(context, product); err != nil {
		return nil, err
	}

	return product, nil
}

/*
Delete removes a product, enforcing ownership.

Parameters:
  - context: context.Context
  - id: string
  - ownerID: string

Returns:
  - error: NotFound, Forbidden (non-owner), or persistence failures
*/
func (service *Service) Delete(context context.Context, id, ownerID string) error {
	product, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if product.UserID != ownerID {
		return apperr.Forbidden("You do not own this product")
	}

	return service.repository.Delete(context, id)
}
