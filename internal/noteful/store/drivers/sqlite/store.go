package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/drivers/sqldb"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	*sqldb.Store

	dsn string
}

var _ store.Store = (*Store)(nil)

// NewStore opens the database at dsn. ":memory:" gives a private in-memory
// database, which is what the tests use.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One connection: sqlite serialises writers anyway, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		Store: sqldb.NewStore(db, sqldb.Dialect{ClassifyError: classifyError}),
		dsn:   dsn,
	}, nil
}

func classifyError(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return nil
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return store.ErrAlreadyExists
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return store.ErrInvalidReference
	}

	// Without extended result codes only the primary code is set.
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := se.Error()
		switch {
		case strings.Contains(msg, "FOREIGN KEY"):
			return store.ErrInvalidReference
		case strings.Contains(msg, "UNIQUE"), strings.Contains(msg, "PRIMARY KEY"):
			return store.ErrAlreadyExists
		}
	}
	return nil
}
