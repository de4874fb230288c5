package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/pkg/cryptox"
	"github.com/aussiebroadwan/noteful/pkg/idx"
	"github.com/aussiebroadwan/noteful/pkg/jwtx"
	"github.com/aussiebroadwan/noteful/pkg/slogx"
)

// SessionService issues and rotates cookie sessions. A session is an access
// and refresh token pair sharing one sid; the refresh token is kept in the
// store and never handed to the client.
type SessionService struct {
	Store   store.CredentialStore
	Hasher  *cryptox.Hasher
	Access  *jwtx.Codec
	Refresh *jwtx.Codec
}

// Login checks the credentials and starts a new session, replacing any
// previous one for the user.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if username == "" || password == "" {
		return domain.TokenPair{}, ErrMissingCredentials
	}

	user, err := s.Store.FindUser(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUnknownUser
		}
		return domain.TokenPair{}, fmt.Errorf("%w: find user: %w", ErrStoreUnavailable, err)
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			l.Error("stored password hash is unusable", "username", username, "err", err)
		}
		return domain.TokenPair{}, ErrBadPassword
	}

	pair, err := s.issue(ctx, user.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUnknownUser
		}
		return domain.TokenPair{}, err
	}

	l.Info("session started", "username", user.Username, "sid", pair.SessionID)
	return pair, nil
}

// Refresh exchanges an access token for a new pair. The access token may be
// expired but must carry a good signature, and the refresh token on record
// must be valid and belong to the same session.
func (s *SessionService) Refresh(ctx context.Context, accessToken string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if accessToken == "" {
		return domain.TokenPair{}, ErrMissingToken
	}

	claims, err := s.Access.Verify(accessToken)
	if !jwtx.IsAuthentic(err) {
		return domain.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	stored, err := s.Store.GetRefreshToken(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrNoActiveSession
		}
		return domain.TokenPair{}, fmt.Errorf("%w: get refresh token: %w", ErrStoreUnavailable, err)
	}

	rc, err := s.Refresh.Verify(stored)
	switch {
	case err != nil:
		return domain.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	case rc.Subject != claims.Subject:
		return domain.TokenPair{}, fmt.Errorf("%w: subject mismatch", ErrInvalidSession)
	case rc.SID != claims.SID:
		// A newer login or refresh has replaced this session.
		l.Info("refresh with superseded session", "username", claims.Subject)
		return domain.TokenPair{}, fmt.Errorf("%w: session superseded", ErrInvalidSession)
	}

	pair, err := s.issue(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, fmt.Errorf("%w: user removed", ErrInvalidSession)
		}
		return domain.TokenPair{}, err
	}

	l.Debug("session rotated", "username", claims.Subject, "sid", pair.SessionID)
	return pair, nil
}

// issue mints a fresh pair under a new sid and records the refresh token.
// Nothing is returned unless the write succeeded.
func (s *SessionService) issue(ctx context.Context, username string) (domain.TokenPair, error) {
	sid := idx.New().String()

	access, ac, err := s.Access.Issue(username, sid)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, _, err := s.Refresh.Issue(username, sid)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.Store.SetRefreshToken(ctx, username, refresh); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, err
		}
		return domain.TokenPair{}, fmt.Errorf("%w: set refresh token: %w", ErrStoreUnavailable, err)
	}

	return domain.TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		SessionID:       sid,
		AccessExpiresAt: ac.ExpiresAt.Time,
	}, nil
}
