package jwtx

import "errors"

// Verifier validates a JWT and gives you back the claims if it's legit.
//
// When the only problem with a token is its age, implementations return the
// verified claims together with ErrExpired so callers can tell an expired but
// authentic token apart from a forged one.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrEmptySecret  = errors.New("jwtx: empty signing secret")
	ErrSharedSecret = errors.New("jwtx: access and refresh secrets must differ")

	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// IsAuthentic reports whether err still implies a verified signature, which
// is the case for a nil error and for the time based claim failures.
func IsAuthentic(err error) bool {
	return err == nil || errors.Is(err, ErrExpired)
}
