package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for new hashes. Verification reads the parameters back
// out of the stored hash, so these can be raised without breaking old rows.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16

	// Bounds on parameters read back from stored hashes.
	maxMemory      = 1 << 20 // KiB
	maxIterations  = 16
	maxParallelism = 16
)

var (
	// ErrMismatch is returned when a password does not match its hash.
	ErrMismatch = errors.New("cryptox: password does not match")

	// ErrInvalidHash is returned when a stored hash cannot be parsed.
	ErrInvalidHash = errors.New("cryptox: invalid hash format")
)

// Hasher produces and checks peppered Argon2id hashes in PHC string form.
type Hasher struct {
	pepper []byte
}

// NewHasher returns a Hasher mixing pepper into every hash. A nil pepper is
// allowed and simply disables peppering.
func NewHasher(pepper []byte) *Hasher {
	p := make([]byte, len(pepper))
	copy(p, pepper)
	return &Hasher{pepper: p}
}

func (h *Hasher) key(password string, salt []byte, t, m uint32, p uint8, n uint32) []byte {
	in := make([]byte, 0, len(password)+len(h.pepper))
	in = append(in, password...)
	in = append(in, h.pepper...)
	return argon2.IDKey(in, salt, t, m, p, n)
}

// Hash returns the PHC encoding of password with a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: read salt: %w", err)
	}
	sum := h.key(password, salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify checks password against encoded in constant time. It returns
// ErrMismatch for a wrong password and wraps ErrInvalidHash when encoded is
// not a hash this package understands.
func (h *Hasher) Verify(password, encoded string) error {
	// "$argon2id$v=19$m=X,t=Y,p=Z$salt$hash"
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidHash, parts[2])
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}
	switch {
	case t == 0 || t > maxIterations:
		return fmt.Errorf("%w: iterations %d out of range", ErrInvalidHash, t)
	case p == 0 || p > maxParallelism:
		return fmt.Errorf("%w: parallelism %d out of range", ErrInvalidHash, p)
	case m < 8*uint32(p) || m > maxMemory:
		return fmt.Errorf("%w: memory %d out of range", ErrInvalidHash, m)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return fmt.Errorf("%w: hash", ErrInvalidHash)
	}

	got := h.key(password, salt, t, m, p, uint32(len(want))) // #nosec G115 -- len of a decoded hash
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

// GeneratePassword returns a random alphanumeric password of length n.
func GeneratePassword(n int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	if n <= 0 {
		return "", fmt.Errorf("cryptox: password length must be positive, got %d", n)
	}

	out := make([]byte, n)
	max := big.NewInt(int64(len(charset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("cryptox: generate password: %w", err)
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out), nil
}
