// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/constants"
	"github.com/ngocmai/camellia/pkg/pagination"
)

// # Mongo Repository

// MongoRepository implements the [Repository] interface on the products collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates the MongoDB implementation of the product repository.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(constants.CollectionProducts)}
}

/*
FindByID retrieves a product by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Product: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *MongoRepository) FindByID(context context.Context, id string) (*Product, error) {
	product := &Product{}
	err := repository.collection.FindOne(context, bson.M{"_id": id}).Decode(product)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Product")
		}
		return nil, fmt.Errorf("mongo_product_repo_find_by_id_failed: %w", err)
	}

	return product, nil
}

/*
FindByIDs retrieves all products matching the given IDs.

Parameters:
  - context: context.Context
  - ids: []string

Returns:
  - []*Product: Entities found; missing IDs are simply absent
  - error: Database errors
*/
func (repository *MongoRepository) FindByIDs(context context.Context, ids []string) ([]*Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := repository.collection.Find(context, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("mongo_product_repo_find_by_ids_failed: %w", err)
	}

	var products []*Product
	if err := cursor.All(context, &products); err != nil {
		return nil, fmt.Errorf("mongo_product_repo_decode_failed: %w", err)
	}

	return products, nil
}

/*
List returns one page of the catalog, newest first, plus the total count.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*Product: One page of entities
  - int: Total product count
  - error: Database errors
*/
func (repository *MongoRepository) List(context context.Context, params pagination.Params) ([]*Product, int, error) {
	return repository.page(context, bson.M{}, params)
}

/*
ListByUser returns one page of the products owned by userID.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []*Product: One page of entities
  - int: Total count owned by the user
  - error: Database errors
*/
func (repository *MongoRepository) ListByUser(context context.Context, userID string, params pagination.Params) ([]*Product, int, error) {
	return repository.page(context, bson.M{"user_id": userID}, params)
}

// page runs the shared count-then-find pagination query.
func (repository *MongoRepository) page(context context.Context, filter bson.M, params pagination.Params) ([]*Product, int, error) {
	total, err := repository.collection.CountDocuments(context, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("mongo_product_repo_count_failed: %w", err)
	}

	// UUIDv7 primary keys are time-ordered, so sorting on _id is newest-first
	// without a separate created_at index.
	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.Limit))

	cursor, err := repository.collection.Find(context, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("mongo_product_repo_list_failed: %w", err)
	}

	var products []*Product
	if err := cursor.All(context, &products); err != nil {
		return nil, 0, fmt.Errorf("mongo_product_repo_decode_failed: %w", err)
	}

	return products, int(total), nil
}

/*
Create persists a new product document.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: apperr.Conflict on a duplicate slug, or database errors
*/
func (repository *MongoRepository) Create(context context.Context, product *Product) error {
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := repository.collection.InsertOne(context, product)

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("A product with this slug already exists")
		}
		return fmt.Errorf("mongo_product_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update replaces the mutable fields of an existing product.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: apperr.NotFound when absent, or database errors
*/
func (repository *MongoRepository) Update(context context.Context, product *Product) error {
	product.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"title":       product.Title,
		"slug":        product.Slug,
		"description": product.Description,
		"price":       product.Price,
		"image_path":  product.ImagePath,
		"updated_at":  product.UpdatedAt,
	}}

	result, err := repository.collection.UpdateOne(context, bson.M{"_id": product.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("A product with this slug already exists")
		}
		return fmt.Errorf("mongo_product_repo_update_failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}

/*
Delete removes a product document.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when absent, or database errors
*/
func (repository *MongoRepository) Delete(context context.Context, id string) error {
	result, err := repository.collection.DeleteOne(context, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo_product_repo_delete_failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}
