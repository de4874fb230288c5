package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrInvalidReference reports a write pointing at a row that does not
	// exist, such as a note in a missing folder.
	ErrInvalidReference = errors.New("store: invalid reference")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it and expose one sub-repository per concern.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Folders() Folders
	Notes() Notes

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

// RefreshTokens holds the single current refresh token of each user. Writing
// a new token replaces the previous one.
type RefreshTokens interface {
	// SetRefreshToken returns ErrNotFound when the user does not exist.
	SetRefreshToken(ctx context.Context, username, token string) error

	// GetRefreshToken returns ErrNotFound when the user has no active session.
	GetRefreshToken(ctx context.Context, username string) (string, error)
}

// SessionSweeper is implemented by refresh token backends that keep tokens
// until they are overwritten. Backends with native expiry do not need it.
type SessionSweeper interface {
	// ListRefreshTokens returns every stored token keyed by username.
	ListRefreshTokens(ctx context.Context) (map[string]string, error)

	// ClearRefreshToken removes token for username unless it has been
	// replaced since it was read. It reports whether anything was removed.
	ClearRefreshToken(ctx context.Context, username, token string) (bool, error)
}

type Folders interface {
	ListFolders(ctx context.Context) ([]domain.Folder, error)
	GetFolder(ctx context.Context, id string) (domain.Folder, error)
	CreateFolder(ctx context.Context, f domain.Folder) error
	UpdateFolder(ctx context.Context, f domain.Folder) error

	// DeleteFolder cascades to the folder's notes (per schema).
	DeleteFolder(ctx context.Context, id string) error
}

type Notes interface {
	ListNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error)
	GetNote(ctx context.Context, id string) (domain.Note, error)

	// CreateNote returns ErrInvalidReference when the folder does not exist.
	CreateNote(ctx context.Context, n domain.Note) error
	UpdateNote(ctx context.Context, n domain.Note) error
	DeleteNote(ctx context.Context, id string) error
}
