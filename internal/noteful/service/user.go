package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/pkg/cryptox"
	"github.com/aussiebroadwan/noteful/pkg/idx"
)

const maxUsernameLen = 64

type UserService struct {
	Users  store.Users
	Hasher *cryptox.Hasher
}

// CreateUser hashes password and stores a new user.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return domain.User{}, invalid("username is required")
	case len(username) > maxUsernameLen:
		return domain.User{}, invalid(fmt.Sprintf("username must be at most %d characters", maxUsernameLen))
	case password == "":
		return domain.User{}, invalid("password is required")
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.Users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}
	return u, nil
}

// EnsureUser creates the user unless one with that name already exists. It
// reports whether a user was created.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) (bool, error) {
	_, err := s.Users.GetUserByUsername(ctx, strings.TrimSpace(username))
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, store.ErrNotFound):
		return false, err
	}

	if _, err := s.CreateUser(ctx, username, password); err != nil {
		if errors.Is(err, ErrUserExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
