package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasher_Hash(t *testing.T) {
	h := NewHasher([]byte("pepper"))

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")

			require.NoError(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHasher_UniqueSalts(t *testing.T) {
	h := NewHasher(nil)

	hash1, err := h.Hash("samepassword")
	require.NoError(t, err)
	hash2, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.NoError(t, h.Verify("samepassword", hash1))
	require.NoError(t, h.Verify("samepassword", hash2))
}

func TestHasher_WrongPassword(t *testing.T) {
	h := NewHasher([]byte("pepper"))
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		"correct-passwor",
		strings.Repeat("x", 10000),
	} {
		require.ErrorIs(t, h.Verify(wrong, hash), ErrMismatch, "input %q", wrong)
	}
}

func TestHasher_PepperMatters(t *testing.T) {
	hash, err := NewHasher([]byte("pepper-a")).Hash("secret")
	require.NoError(t, err)

	require.NoError(t, NewHasher([]byte("pepper-a")).Verify("secret", hash))
	require.ErrorIs(t, NewHasher([]byte("pepper-b")).Verify("secret", hash), ErrMismatch)
	require.ErrorIs(t, NewHasher(nil).Verify("secret", hash), ErrMismatch)
}

func TestHasher_InvalidHashFormat(t *testing.T) {
	h := NewHasher(nil)

	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"plain text", "hunter2"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"zero iterations", "$argon2id$v=19$m=8,t=0,p=1$c2FsdA$aGFzaA"},
		{"zero parallelism", "$argon2id$v=19$m=8,t=1,p=0$c2FsdA$aGFzaA"},
		{"memory below minimum", "$argon2id$v=19$m=4,t=1,p=1$c2FsdA$aGFzaA"},
		{"memory too large", "$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$aGFzaA"},
		{"too many iterations", "$argon2id$v=19$m=19456,t=4000000000,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = h.Verify("password", tt.hash) })
			require.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		password, err := GeneratePassword(16)
		require.NoError(t, err)
		require.Len(t, password, 16)

		for _, c := range password {
			valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			require.True(t, valid, "password should only contain alphanumeric characters")
		}

		require.False(t, seen[password], "duplicate password generated")
		seen[password] = true
	}

	_, err := GeneratePassword(0)
	require.Error(t, err)
}
