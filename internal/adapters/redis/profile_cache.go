// Package redis provides Redis-based adapters for the contacts system.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/contacts-api/internal/core"
	"github.com/target/contacts-api/internal/domain/model"
)

// ProfileCache is a Redis-backed mirror of credential records, keyed by
// identity. Entries are disposable snapshots: losing one only costs a
// database read on the next lookup.
type ProfileCache struct {
	client redis.UniversalClient
	prefix string
}

// NewProfileCache creates a profile cache with the standard key prefix.
func NewProfileCache(client redis.UniversalClient) *ProfileCache {
	return &ProfileCache{
		client: client,
		prefix: "user:",
	}
}

// NewProfileCacheWithPrefix creates a profile cache with a custom key prefix.
func NewProfileCacheWithPrefix(client redis.UniversalClient, prefix string) *ProfileCache {
	return &ProfileCache{
		client: client,
		prefix: prefix,
	}
}

// Put stores a snapshot of the credential record under "user:"+email.
// A snapshot written with the same key overwrites the previous one.
func (c *ProfileCache) Put(ctx context.Context, user *model.User, ttl time.Duration) error {
	if user == nil || user.Email == "" {
		return errors.New("user with email is required")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	return c.client.Set(ctx, c.prefix+user.Email, data, ttl).Err()
}

// Get retrieves a cached snapshot. Returns core.ErrProfileNotCached when the
// key is missing or expired.
func (c *ProfileCache) Get(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, core.ErrProfileNotCached
	}

	data, err := c.client.Get(ctx, c.prefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrProfileNotCached
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var user model.User
	if unmarshalErr := json.Unmarshal([]byte(data), &user); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", unmarshalErr)
	}
	return &user, nil
}

// Delete removes a cached snapshot. Deleting a missing key is a no-op.
func (c *ProfileCache) Delete(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	return c.client.Del(ctx, c.prefix+email).Err()
}
