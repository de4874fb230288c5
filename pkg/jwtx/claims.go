package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the cookie session flow.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// NumericDate claims carry millisecond precision so two tokens issued within
// the same second still differ. jwt/v5 reads this when building and
// encoding iat and exp.
func init() {
	jwt.TimePrecision = time.Millisecond
}

// Claims are the token claims shared by access and refresh tokens. The
// subject is the username. SID ties an access token to the refresh token
// minted alongside it.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID
	SID string `json:"sid,omitempty"`
}

// NewClaims builds claims issued at now and expiring after ttl.
func NewClaims(subject, sid string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SID: sid,
	}
}

// ValidateAt checks the time based claims against now. The expiry boundary
// is inclusive: a token checked at exactly its exp is expired.
func (c *Claims) ValidateAt(now time.Time) error {
	if c.Subject == "" || c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
