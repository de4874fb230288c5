package sqlite_test

import (
	"testing"

	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/drivers/sqlite"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/storetest"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, newStore)
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
}

func TestStore_FileBacked(t *testing.T) {
	path := t.TempDir() + "/noteful.db"

	s, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	storetest.SeedUser(t, s.Users(), "ryan")
	require.NoError(t, s.Close())

	reopened, err := sqlite.NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.ApplyMigrations())

	_, err = reopened.Users().GetUserByUsername(t.Context(), "ryan")
	require.NoError(t, err)
}
