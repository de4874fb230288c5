package jwtx

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/awnumar/memguard"
	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies HS256 tokens with a single secret and TTL. The
// secret lives in a memguard enclave and is only decrypted for the duration
// of a Sign or Verify call.
type Codec struct {
	secret *memguard.Enclave
	ttl    time.Duration
	now    func() time.Time
}

var _ Verifier = (*Codec)(nil)

// Option customises a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec creates a codec for secret. The caller's slice is left untouched.
func NewCodec(secret []byte, ttl time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwtx: ttl must be positive, got %s", ttl)
	}

	// NewEnclave wipes its input, so hand it a copy.
	buf := make([]byte, len(secret))
	copy(buf, secret)

	c := &Codec{
		secret: memguard.NewEnclave(buf),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewCodecPair builds the access and refresh codecs, refusing identical
// secrets so a token of one kind can never verify as the other.
func NewCodecPair(
	accessSecret, refreshSecret []byte,
	accessTTL, refreshTTL time.Duration,
	opts ...Option,
) (access, refresh *Codec, err error) {
	if len(accessSecret) > 0 && subtle.ConstantTimeCompare(accessSecret, refreshSecret) == 1 {
		return nil, nil, ErrSharedSecret
	}

	access, err = NewCodec(accessSecret, accessTTL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("access codec: %w", err)
	}
	refresh, err = NewCodec(refreshSecret, refreshTTL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("refresh codec: %w", err)
	}
	return access, refresh, nil
}

// TTL returns the lifetime given to issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue builds claims for subject and sid at the current time and signs them.
func (c *Codec) Issue(subject, sid string) (string, Claims, error) {
	claims := NewClaims(subject, sid, c.ttl, c.now())
	token, err := c.Sign(claims)
	if err != nil {
		return "", Claims{}, err
	}
	return token, claims, nil
}

// Sign produces the compact HS256 form of claims. Identical claims always
// produce the identical token.
func (c *Codec) Sign(claims Claims) (string, error) {
	key, err := c.secret.Open()
	if err != nil {
		return "", fmt.Errorf("jwtx: open secret: %w", err)
	}
	defer key.Destroy()

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.Bytes())
}

// Verify checks the signature and then the time based claims. An expired
// token with a good signature yields its claims together with ErrExpired.
func (c *Codec) Verify(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, ErrMalformed
	}

	key, err := c.secret.Open()
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: open secret: %w", err)
	}
	defer key.Destroy()

	// Claims are validated below against our own clock so the expiry
	// boundary and the expired-but-authentic case are under our control.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err = parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return key.Bytes(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, ErrInvalidSig
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := claims.ValidateAt(c.now()); err != nil {
		if errors.Is(err, ErrExpired) {
			return claims, err
		}
		return Claims{}, err
	}

	return claims, nil
}
