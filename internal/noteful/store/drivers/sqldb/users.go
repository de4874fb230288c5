package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
	"github.com/aussiebroadwan/noteful/internal/noteful/store"
)

type usersRepo struct {
	q *Queries
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := r.q.queryRow(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, r.q.d.mapError(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	_, err := r.q.exec(ctx, `
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

type refreshTokensRepo struct {
	q *Queries
}

func (r *refreshTokensRepo) SetRefreshToken(ctx context.Context, username, token string) error {
	return r.q.execOne(ctx, `
		UPDATE users
		SET refresh_token = ?, updated_at = ?
		WHERE username = ?`,
		token, time.Now().UTC(), username,
	)
}

func (r *refreshTokensRepo) GetRefreshToken(ctx context.Context, username string) (string, error) {
	var token sql.NullString
	err := r.q.queryRow(ctx, `SELECT refresh_token FROM users WHERE username = ?`, username).Scan(&token)
	if err != nil {
		return "", r.q.d.mapError(err)
	}
	if !token.Valid || token.String == "" {
		return "", store.ErrNotFound
	}
	return token.String, nil
}

var _ store.SessionSweeper = (*refreshTokensRepo)(nil)

func (r *refreshTokensRepo) ListRefreshTokens(ctx context.Context) (map[string]string, error) {
	rows, err := r.q.query(ctx, `
		SELECT username, refresh_token
		FROM users
		WHERE refresh_token IS NOT NULL AND refresh_token <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := make(map[string]string)
	for rows.Next() {
		var username, token string
		if err := rows.Scan(&username, &token); err != nil {
			return nil, err
		}
		tokens[username] = token
	}
	return tokens, rows.Err()
}

func (r *refreshTokensRepo) ClearRefreshToken(ctx context.Context, username, token string) (bool, error) {
	err := r.q.execOne(ctx, `
		UPDATE users
		SET refresh_token = NULL, updated_at = ?
		WHERE username = ? AND refresh_token = ?`,
		time.Now().UTC(), username, token,
	)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	}
	return false, err
}
