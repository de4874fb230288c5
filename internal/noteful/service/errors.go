package service

import "errors"

// Session errors. Handlers map these onto responses with errors.Is.
var (
	ErrMissingCredentials = errors.New("missing_credentials")
	ErrUnknownUser        = errors.New("unknown_user")
	ErrBadPassword        = errors.New("bad_password")
	ErrStoreUnavailable   = errors.New("store_unavailable")
	ErrMissingToken       = errors.New("missing_token")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrNoActiveSession    = errors.New("no_active_session")
	ErrInvalidSession     = errors.New("invalid_session")
)

// Resource errors.
var (
	ErrUserExists     = errors.New("user_exists")
	ErrFolderNotFound = errors.New("folder_not_found")
	ErrNoteNotFound   = errors.New("note_not_found")
)

// ValidationError describes input the caller has to fix.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }
