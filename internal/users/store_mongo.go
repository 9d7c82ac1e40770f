// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/constants"
)

// # Mongo Repository

// MongoRepository implements the [Repository] interface on the users collection.
//
// # Error Mapping
//
// Storage-specific errors (mongo.ErrNoDocuments, duplicate-key write errors)
// are mapped to domain-friendly [apperr.AppError] values so callers never see
// driver internals.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates the MongoDB implementation of the user repository.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(constants.CollectionUsers)}
}

/*
FindByID retrieves an account by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *MongoRepository) FindByID(context context.Context, id string) (*User, error) {
	user := &User{}
	err := repository.collection.FindOne(context, bson.M{"_id": id}).Decode(user)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("mongo_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByEmail retrieves an account by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *MongoRepository) FindByEmail(context context.Context, email string) (*User, error) {
	user := &User{}
	err := repository.collection.FindOne(context, bson.M{"email": email}).Decode(user)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("mongo_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
Create persists a new account document.

Description: Relies on the unique index on email to reject duplicates at the
storage boundary, which is race-free unlike a lookup-then-insert check.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email, or database errors
*/
func (repository *MongoRepository) Create(context context.Context, user *User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.collection.InsertOne(context, user)

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("Email is already registered")
		}
		return fmt.Errorf("mongo_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
UpdateCart replaces the embedded cart for an account.

Parameters:
  - context: context.Context
  - userID: string
  - cart: []CartItem

Returns:
  - error: Database errors
*/
func (repository *MongoRepository) UpdateCart(context context.Context, userID string, cart []CartItem) error {
	update := bson.M{"$set": bson.M{
		"cart":       cart,
		"updated_at": time.Now(),
	}}

	result, err := repository.collection.UpdateOne(context, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("mongo_user_repo_update_cart_failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
