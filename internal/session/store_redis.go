// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package session

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/constants"
)

// RedisStore implements [Store] on Redis with native key expiry.
//
// This is the alternate backend the bootstrap can be parameterized with;
// the record is stored as JSON under a prefixed key whose TTL tracks the
// session expiry exactly.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// key builds the namespaced Redis key for a session ID.
func (store *RedisStore) key(id string) string {
	return constants.RedisPrefixSession + id
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
func (store *RedisStore) Find(context stdctx.Context, id string) (*Session, error) {
	payload, err := store.client.Get(context, store.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_find_failed: %w", err)
	}

	var record Session
	if err := json.Unmarshal(payload, &record); err != nil {
		// A corrupt record is indistinguishable from a missing one for the
		// caller; degrade to a fresh session rather than failing the request.
		return nil, apperr.NotFound("Session")
	}

	return &record, nil
}

/*
Save persists the session record with a TTL matching its expiry.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Persistence failures
*/
func (store *RedisStore) Save(context stdctx.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second // already expired; let Redis reap it immediately
	}

	if err := store.client.Set(context, store.key(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
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
func (store *RedisStore) Delete(context stdctx.Context, id string) error {
	if err := store.client.Del(context, store.key(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
