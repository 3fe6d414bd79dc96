package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRefreshTokenLifecycle(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewStore(client)
	ctx := context.Background()

	userID := "user-1"
	token := "refresh-token-abc"

	t.Run("unknown token is invalid", func(t *testing.T) {
		ok, err := store.ValidateRefreshToken(ctx, userID, token)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stored token validates", func(t *testing.T) {
		require.NoError(t, store.StoreRefreshToken(ctx, userID, token, time.Hour))
		ok, err := store.ValidateRefreshToken(ctx, userID, token)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("token is scoped to its user", func(t *testing.T) {
		ok, err := store.ValidateRefreshToken(ctx, "user-2", token)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("deleted token no longer validates", func(t *testing.T) {
		require.NoError(t, store.DeleteRefreshToken(ctx, userID, token))
		ok, err := store.ValidateRefreshToken(ctx, userID, token)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("token expires with its TTL", func(t *testing.T) {
		require.NoError(t, store.StoreRefreshToken(ctx, userID, "short-lived", time.Second))
		mr.FastForward(2 * time.Second)
		ok, err := store.ValidateRefreshToken(ctx, userID, "short-lived")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeleteAllRefreshTokens(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewStore(client)
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, "user-1", "tok-a", time.Hour))
	require.NoError(t, store.StoreRefreshToken(ctx, "user-1", "tok-b", time.Hour))
	require.NoError(t, store.StoreRefreshToken(ctx, "user-2", "tok-c", time.Hour))

	require.NoError(t, store.DeleteAllRefreshTokens(ctx, "user-1"))

	for _, tok := range []string{"tok-a", "tok-b"} {
		ok, err := store.ValidateRefreshToken(ctx, "user-1", tok)
		require.NoError(t, err)
		assert.False(t, ok, "token %s should have been dropped", tok)
	}

	// Other users are untouched.
	ok, err := store.ValidateRefreshToken(ctx, "user-2", "tok-c")
	require.NoError(t, err)
	assert.True(t, ok)

	// Idempotent on an empty index.
	require.NoError(t, store.DeleteAllRefreshTokens(ctx, "user-1"))
}

func TestBlacklist(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewStore(client)
	ctx := context.Background()

	t.Run("unknown token is not blacklisted", func(t *testing.T) {
		ok, err := store.IsBlacklisted(ctx, "some-token")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("blacklisted token is reported", func(t *testing.T) {
		require.NoError(t, store.BlacklistToken(ctx, "some-token", time.Minute))
		ok, err := store.IsBlacklisted(ctx, "some-token")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("entry expires with the token lifetime", func(t *testing.T) {
		require.NoError(t, store.BlacklistToken(ctx, "expiring", time.Second))
		mr.FastForward(2 * time.Second)
		ok, err := store.IsBlacklisted(ctx, "expiring")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-positive TTL is a no-op", func(t *testing.T) {
		require.NoError(t, store.BlacklistToken(ctx, "already-dead", 0))
		ok, err := store.IsBlacklisted(ctx, "already-dead")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLoginAttempts(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewStore(client)
	ctx := context.Background()

	ip := "203.0.113.7"

	count, err := store.LoginAttempts(ctx, ip)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := int64(1); i <= 5; i++ {
		n, err := store.IncrementLoginAttempts(ctx, ip)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	count, err = store.LoginAttempts(ctx, ip)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	// Another IP counts independently.
	other, err := store.LoginAttempts(ctx, "198.51.100.9")
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)

	t.Run("reset clears the counter", func(t *testing.T) {
		require.NoError(t, store.ResetLoginAttempts(ctx, ip))
		count, err := store.LoginAttempts(ctx, ip)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("window expires", func(t *testing.T) {
		_, err := store.IncrementLoginAttempts(ctx, ip)
		require.NoError(t, err)
		mr.FastForward(16 * time.Minute)
		count, err := store.LoginAttempts(ctx, ip)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
