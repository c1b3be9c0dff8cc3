package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/contacts-api/internal/core"
	"github.com/target/contacts-api/internal/domain/model"
	"github.com/target/contacts-api/internal/testutil"
)

func cachedUser() *model.User {
	avatar := "https://cdn.example.com/avatars/abc.png"
	return &model.User{
		ID:                "user-1",
		Email:             "alice@example.com",
		PasswordHash:      "$2a$04$hash",
		Active:            true,
		Verified:          true,
		AvatarURL:         &avatar,
		Role:              model.RoleAdmin,
		PasswordChangedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestProfileCache_Integration_PutGetRoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewProfileCache(client)
	ctx := context.Background()
	user := cachedUser()

	require.NoError(t, cache.Put(ctx, user, time.Minute))

	got, err := cache.Get(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Equal(t, user.Role, got.Role)
	require.NotNil(t, got.AvatarURL)
	assert.Equal(t, *user.AvatarURL, *got.AvatarURL)
	assert.True(t, got.PasswordChangedAt.Equal(user.PasswordChangedAt))
}

func TestProfileCache_Integration_MissIsNotCached(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewProfileCache(client)

	_, err := cache.Get(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, core.ErrProfileNotCached)
}

func TestProfileCache_Integration_Delete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewProfileCache(client)
	ctx := context.Background()
	user := cachedUser()

	require.NoError(t, cache.Put(ctx, user, time.Minute))
	require.NoError(t, cache.Delete(ctx, user.Email))

	_, err := cache.Get(ctx, user.Email)
	assert.ErrorIs(t, err, core.ErrProfileNotCached)

	// Deleting again is a no-op, not an error.
	assert.NoError(t, cache.Delete(ctx, user.Email))
	assert.NoError(t, cache.Delete(ctx, ""))
}

func TestProfileCache_Integration_EntriesExpire(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewProfileCache(client)
	ctx := context.Background()
	user := cachedUser()

	require.NoError(t, cache.Put(ctx, user, 50*time.Millisecond))
	time.Sleep(120 * time.Millisecond)

	_, err := cache.Get(ctx, user.Email)
	assert.ErrorIs(t, err, core.ErrProfileNotCached)
}

func TestProfileCache_Integration_PutOverwrites(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewProfileCache(client)
	ctx := context.Background()
	user := cachedUser()

	require.NoError(t, cache.Put(ctx, user, time.Minute))

	rotated := *user
	rotated.PasswordHash = "$2a$04$newhash"
	rotated.PasswordChangedAt = user.PasswordChangedAt.Add(time.Hour)
	require.NoError(t, cache.Put(ctx, &rotated, time.Minute))

	got, err := cache.Get(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$newhash", got.PasswordHash)
	assert.True(t, got.PasswordChangedAt.Equal(rotated.PasswordChangedAt))
}

func TestProfileCache_KeyPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewProfileCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, cachedUser(), time.Minute))

	exists, err := client.Exists(ctx, "user:alice@example.com").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}
