// Package redis keeps the per-user refresh token slot in redis instead of the
// users table. Keys expire together with the token they hold.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "noteful:refresh:"

type RefreshTokens struct {
	client *redis.Client
	ttl    time.Duration
}

var _ store.RefreshTokens = (*RefreshTokens)(nil)

// NewRefreshTokens stores tokens for ttl, which should match the refresh
// token lifetime so a dead session also disappears from redis.
func NewRefreshTokens(client *redis.Client, ttl time.Duration) *RefreshTokens {
	return &RefreshTokens{client: client, ttl: ttl}
}

func (r *RefreshTokens) key(username string) string { return keyPrefix + username }

// SetRefreshToken overwrites the user's slot. User existence is checked by
// the credential store wrapping this backend.
func (r *RefreshTokens) SetRefreshToken(ctx context.Context, username, token string) error {
	if err := r.client.Set(ctx, r.key(username), token, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokens) GetRefreshToken(ctx context.Context, username string) (string, error) {
	token, err := r.client.Get(ctx, r.key(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("redis get refresh token: %w", err)
	}
	return token, nil
}

// Ping reports whether redis is reachable, for readiness checks.
func (r *RefreshTokens) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RefreshTokens) Close() error { return r.client.Close() }
