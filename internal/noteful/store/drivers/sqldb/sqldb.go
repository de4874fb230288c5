// Package sqldb holds the database/sql repositories shared by the sqlite and
// postgres drivers. Queries are written with '?' placeholders and rebound per
// dialect.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/noteful/internal/noteful/store"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect describes the differences between drivers that the shared
// queries care about.
type Dialect struct {
	// Numbered placeholders ($1, $2, ...) instead of '?'.
	Numbered bool

	// ClassifyError maps driver constraint errors onto store errors. It
	// returns nil when err is not a constraint error it recognises.
	ClassifyError func(err error) error
}

// Rebind rewrites '?' placeholders for the dialect.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (d Dialect) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if d.ClassifyError != nil {
		if mapped := d.ClassifyError(err); mapped != nil {
			return errors.Join(mapped, err)
		}
	}
	return err
}

// Store implements every sub-repository of store.Store over a *sql.DB.
// Drivers embed it and add their own migrations.
type Store struct {
	db *sql.DB
	q  *Queries
}

func NewStore(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, q: &Queries{db: db, d: d}}
}

// DB exposes the underlying handle for migrations.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users                 { return &usersRepo{q: s.q} }
func (s *Store) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{q: s.q} }
func (s *Store) Folders() store.Folders             { return &foldersRepo{q: s.q} }
func (s *Store) Notes() store.Notes                 { return &notesRepo{q: s.q} }

// Queries runs the rebound SQL. It mirrors the shape of generated query
// code so the repositories stay thin.
type Queries struct {
	db DBTX
	d  Dialect
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := q.db.ExecContext(ctx, q.d.Rebind(query), args...)
	return res, q.d.mapError(err)
}

// execOne runs a statement that must touch exactly one row.
func (q *Queries) execOne(ctx context.Context, query string, args ...any) error {
	res, err := q.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (q *Queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.d.Rebind(query), args...)
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := q.db.QueryContext(ctx, q.d.Rebind(query), args...)
	return rows, q.d.mapError(err)
}
