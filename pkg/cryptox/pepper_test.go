package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second load returns the persisted value.
	second, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrCreatePepper_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("  seasoning\n"), 0o600))

	p, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, "seasoning", string(p))
}

func TestLoadOrCreatePepper_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := LoadOrCreatePepper(path)
	require.Error(t, err)
}
