package domain

import "time"

// TokenPair is what a login or refresh mints. Only the access token leaves
// the server; the refresh token is stored against the user.
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	SessionID       string
	AccessExpiresAt time.Time
}
