package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/drivers/sqldb"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// SQLSTATE codes we translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type Store struct {
	*sqldb.Store
}

var _ store.Store = (*Store)(nil)

// NewStore connects to the database at dsn through the pgx stdlib driver and
// checks it is reachable.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &Store{
		Store: sqldb.NewStore(db, dialect()),
	}, nil
}

func dialect() sqldb.Dialect {
	return sqldb.Dialect{Numbered: true, ClassifyError: classifyError}
}

func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return store.ErrAlreadyExists
	case codeForeignKeyViolation:
		return store.ErrInvalidReference
	}
	return nil
}
