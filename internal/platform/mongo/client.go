// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package mongo provides a managed client for the document database.

It owns connection setup, startup health verification, and the one-time index
creation the collections depend on (there is no SQL schema to migrate; index
creation is the document-store equivalent, run idempotently at boot).

Core Responsibilities:

  - Connectivity: URL parsing, pooling, and a startup ping with a hard deadline.
  - Indexes: Unique user email, product slug, and the session TTL index.
  - Safety: Per-document atomicity is provided by the server; no transactions
    are used anywhere in this application.
*/
package mongo

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ngocmai/camellia/internal/platform/constants"
)

// Opinionated default timeouts for MongoDB operations.
const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 2 * time.Second
)

// Connect parses a MongoDB URL and returns a ready-to-use database handle.
//
// # Parameters
//   - context: Context for the initial ping.
//   - mongoURL: MongoDB connection URL.
//   - database: Database name to select.
//   - logger: Structured logger for connection events.
func Connect(context stdctx.Context, mongoURL, database string, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(100).
		SetMinPoolSize(1).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: failed to create client: %w", err)
	}

	// Validate connectivity immediately at startup.
	if err := Ping(context, client); err != nil {
		_ = client.Disconnect(context)
		return nil, nil, err
	}

	logger.Info("mongo client connected",
		slog.String("database", database),
	)

	return client, client.Database(database), nil
}

// Ping verifies that the MongoDB client is healthy.
func Ping(context stdctx.Context, client *mongo.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}

	return nil
}

// EnsureIndexes creates the indexes every collection relies on.
//
// # Idempotency
//
// CreateOne is a no-op for indexes that already exist with the same options,
// so this is safe to run on every startup, mirroring an idempotent migration step.
func EnsureIndexes(context stdctx.Context, database *mongo.Database, logger *slog.Logger) error {

	// Unique login email per account.
	_, err := database.Collection(constants.CollectionUsers).Indexes().CreateOne(context, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo: failed to create users.email index: %w", err)
	}

	// Unique product slug for shop URLs.
	_, err = database.Collection(constants.CollectionProducts).Indexes().CreateOne(context, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo: failed to create products.slug index: %w", err)
	}

	// Server-side session expiry. ExpireAfterSeconds(0) makes the server
	// delete documents as soon as expires_at passes.
	_, err = database.Collection(constants.CollectionSessions).Indexes().CreateOne(context, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("mongo: failed to create sessions TTL index: %w", err)
	}

	logger.Info("mongo indexes ensured")
	return nil
}
