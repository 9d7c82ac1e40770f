// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package orders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ngocmai/camellia/internal/platform/constants"
)

// # Mongo Repository

// MongoRepository implements the [Repository] interface on the orders collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates the MongoDB implementation of the order repository.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(constants.CollectionOrders)}
}

/*
Create persists a completed checkout snapshot.

Parameters:
  - context: context.Context
  - order: *Order

Returns:
  - error: Database errors
*/
func (repository *MongoRepository) Create(context context.Context, order *Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	if _, err := repository.collection.InsertOne(context, order); err != nil {
		return fmt.Errorf("mongo_order_repo_create_failed: %w", err)
	}

	return nil
}

/*
ListByUser returns every order belonging to userID, newest first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Order: Hydrated entities
  - error: Database errors
*/
func (repository *MongoRepository) ListByUser(context context.Context, userID string) ([]*Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := repository.collection.Find(context, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo_order_repo_list_failed: %w", err)
	}

	var orders []*Order
	if err := cursor.All(context, &orders); err != nil {
		return nil, fmt.Errorf("mongo_order_repo_decode_failed: %w", err)
	}

	return orders, nil
}
