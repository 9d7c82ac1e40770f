// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package session

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/constants"
)

// MongoStore implements [Store] on the sessions collection of the document store.
//
// # Expiry
//
// A TTL index on expires_at (created at startup) removes stale records
// server-side. The index fires with up to a minute of lag, so Find also
// checks the expiry explicitly to never hand out a stale session.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a document-store-backed session store.
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{collection: database.Collection(constants.CollectionSessions)}
}

/*
Find returns the session with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Session: Hydrated record
  - error: apperr.NotFound when absent or expired; connectivity errors otherwise
*/
func (store *MongoStore) Find(context stdctx.Context, id string) (*Session, error) {
	var record Session

	err := store.collection.FindOne(context, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("mongo_session_find_failed: %w", err)
	}

	// The TTL monitor lags up to a minute; enforce the expiry ourselves.
	if record.IsExpired(time.Now().UTC()) {
		return nil, apperr.NotFound("Session")
	}

	return &record, nil
}

/*
Save persists the session record, creating or replacing it.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Persistence failures
*/
func (store *MongoStore) Save(context stdctx.Context, session *Session) error {
	_, err := store.collection.ReplaceOne(
		context,
		bson.M{"_id": session.ID},
		session,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo_session_save_failed: %w", err)
	}

	session.MarkClean()
	return nil
}

/*
Delete removes the session record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Persistence failures (absence is not an error)
*/
func (store *MongoStore) Delete(context stdctx.Context, id string) error {
	if _, err := store.collection.DeleteOne(context, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo_session_delete_failed: %w", err)
	}
	return nil
}
