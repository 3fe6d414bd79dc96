// Package sessions is the Redis-backed session bookkeeping store: the
// refresh-token allowlist (the source of truth for revocation), the
// access-token blacklist, and per-IP login-attempt counters. Every key
// carries a TTL; nothing here is cleaned up by application code.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshKeyPrefix  = "refresh:"
	refreshIndexKey   = "refresh_index:"
	blacklistPrefix   = "blacklist:"
	loginAttemptsKey  = "login_attempts:"
	attemptWindowTTL  = 15 * time.Minute
	blacklistSentinel = "revoked"
)

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Connect parses a Redis URL, opens a client and verifies the connection.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

func refreshKey(userID, token string) string {
	return refreshKeyPrefix + userID + ":" + token
}

func indexKey(userID string) string {
	return refreshIndexKey + userID
}

// StoreRefreshToken records a refresh token with its intended lifetime and
// adds its key to the per-user index set. The index carries the same TTL so
// it cannot outlive the newest token it references.
func (s *Store) StoreRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	key := refreshKey(userID, token)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, userID, ttl)
	pipe.SAdd(ctx, indexKey(userID), key)
	pipe.Expire(ctx, indexKey(userID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// ValidateRefreshToken reports whether the token is currently allowlisted for
// the user. A rotated-out or expired token is simply absent.
func (s *Store) ValidateRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	val, err := s.client.Get(ctx, refreshKey(userID, token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to validate refresh token: %w", err)
	}
	return val == userID, nil
}

// DeleteRefreshToken removes a single refresh token (single-use rotation).
func (s *Store) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	key := refreshKey(userID, token)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, indexKey(userID), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// DeleteAllRefreshTokens drops every live refresh token for the user via the
// per-user index set, which stands in for pattern-based key scanning.
func (s *Store) DeleteAllRefreshTokens(ctx context.Context, userID string) error {
	keys, err := s.client.SMembers(ctx, indexKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to read refresh token index: %w", err)
	}

	pipe := s.client.TxPipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, indexKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}
	return nil
}

// BlacklistToken marks an access token revoked for the remainder of its
// lifetime. Non-positive TTLs are ignored; the token is already dead.
func (s *Store) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistPrefix+token, blacklistSentinel, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether the access token was revoked before its
// natural expiry.
func (s *Store) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := s.client.Get(ctx, blacklistPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return true, nil
}

// LoginAttempts returns the current failed-login count for the client IP.
func (s *Store) LoginAttempts(ctx context.Context, ip string) (int64, error) {
	val, err := s.client.Get(ctx, loginAttemptsKey+ip).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read login attempts: %w", err)
	}
	return val, nil
}

// IncrementLoginAttempts bumps the failed-login counter for the IP. The
// 15-minute window starts when the counter is created.
func (s *Store) IncrementLoginAttempts(ctx context.Context, ip string) (int64, error) {
	key := loginAttemptsKey + ip

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment login attempts: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, attemptWindowTTL).Err(); err != nil {
			return count, fmt.Errorf("failed to set attempt window: %w", err)
		}
	}
	return count, nil
}

// ResetLoginAttempts clears the counter after a successful login.
func (s *Store) ResetLoginAttempts(ctx context.Context, ip string) error {
	if err := s.client.Del(ctx, loginAttemptsKey+ip).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}
