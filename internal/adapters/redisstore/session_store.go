// Package redisstore provides a Redis-backed implementation of
// ports.SessionStore for companion and daemon deployments where the
// session record outlives a single process.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/zion-platform/zion-sync/internal/domain/auth"
	"github.com/zion-platform/zion-sync/internal/ports"
	"github.com/zion-platform/zion-sync/internal/token"
)

const defaultPrefix = "zion:session:"

// Store keeps the session record under a single key per installation.
// When the session token carries an expiry, the key TTL tracks it so
// stale records age out of Redis on their own.
type Store struct {
	client redis.UniversalClient
	key    string
}

// New creates a Redis-backed session store for the given installation.
func New(client redis.UniversalClient, installationID string) (*Store, error) {
	return NewWithPrefix(client, defaultPrefix, installationID)
}

// NewWithPrefix creates a Redis session store with a custom key prefix.
func NewWithPrefix(client redis.UniversalClient, prefix, installationID string) (*Store, error) {
	if client == nil {
		return nil, errors.New("redisstore: client is required")
	}
	if installationID == "" {
		return nil, errors.New("redisstore: installation id is required")
	}
	return &Store{client: client, key: prefix + installationID}, nil
}

// Load returns the stored session. A missing key or a record that no
// longer decodes counts as absent.
func (s *Store) Load(ctx context.Context) (domainauth.Session, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if sess.Validate() != nil {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	return sess, nil
}

// Save replaces the stored session. The TTL is derived from the token
// expiry when one is present; tokens without an expiry persist until
// cleared. A session whose token is already expired is rejected with an
// error instead of being written with a non-positive TTL, a stricter
// check than ports.SessionStore requires of its implementations.
func (s *Store) Save(ctx context.Context, sess domainauth.Session) error {
	if err := sess.Validate(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	var ttl time.Duration
	if claims, derr := token.Decode(sess.Token); derr == nil && claims.HasExpiry() {
		ttl = time.Until(claims.ExpiresAt)
		if ttl <= 0 {
			return errors.New("session token is expired")
		}
	}

	if err := s.client.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent key is fine.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
