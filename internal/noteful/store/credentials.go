package store

import (
	"context"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
)

// CredentialStore is the view of the store the session flow needs: user
// lookup plus the per-user refresh token slot. Any error other than
// ErrNotFound means the store is unavailable.
type CredentialStore interface {
	FindUser(ctx context.Context, username string) (domain.User, error)
	SetRefreshToken(ctx context.Context, username, token string) error
	GetRefreshToken(ctx context.Context, username string) (string, error)
}

type credentialStore struct {
	users  Users
	tokens RefreshTokens
}

// NewCredentialStore joins a user repository with a refresh token backend,
// which need not live in the same database.
func NewCredentialStore(users Users, tokens RefreshTokens) CredentialStore {
	return &credentialStore{users: users, tokens: tokens}
}

func (c *credentialStore) FindUser(ctx context.Context, username string) (domain.User, error) {
	return c.users.GetUserByUsername(ctx, username)
}

func (c *credentialStore) SetRefreshToken(ctx context.Context, username, token string) error {
	// The token backend may not know about users at all, so check here.
	if _, err := c.users.GetUserByUsername(ctx, username); err != nil {
		return err
	}
	return c.tokens.SetRefreshToken(ctx, username, token)
}

func (c *credentialStore) GetRefreshToken(ctx context.Context, username string) (string, error) {
	return c.tokens.GetRefreshToken(ctx, username)
}
