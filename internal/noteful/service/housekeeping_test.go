package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/drivers/sqlite"
	"github.com/aussiebroadwan/noteful/internal/noteful/store/storetest"
	"github.com/aussiebroadwan/noteful/pkg/jwtx"
	"github.com/aussiebroadwan/noteful/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeeping_Sweep(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	for _, name := range []string{"active", "idle", "forged", "loggedout"} {
		storetest.SeedUser(t, s.Users(), name)
	}

	clock := &testClock{t: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
	refresh, err := jwtx.NewCodec([]byte("refresh-secret"), refreshTTL, jwtx.WithClock(clock.Now))
	require.NoError(t, err)

	tokens := s.RefreshTokens()
	issue := func(username string) string {
		tok, _, err := refresh.Issue(username, "sid-"+username)
		require.NoError(t, err)
		require.NoError(t, tokens.SetRefreshToken(ctx, username, tok))
		return tok
	}

	issue("idle")
	clock.Advance(45 * time.Minute)
	active := issue("active")
	require.NoError(t, tokens.SetRefreshToken(ctx, "forged", "not-a-token"))
	clock.Advance(30 * time.Minute)

	sweeper, ok := tokens.(store.SessionSweeper)
	require.True(t, ok, "database refresh tokens support sweeping")

	hk := NewHousekeepingService(sweeper, refresh, slogx.Discard(), time.Hour)
	cleared, err := hk.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, cleared)

	got, err := tokens.GetRefreshToken(ctx, "active")
	require.NoError(t, err)
	require.Equal(t, active, got)

	for _, name := range []string{"idle", "forged", "loggedout"} {
		_, err := tokens.GetRefreshToken(ctx, name)
		require.ErrorIs(t, err, store.ErrNotFound, name)
	}

	cleared, err = hk.Sweep(ctx)
	require.NoError(t, err)
	require.Zero(t, cleared)
}

func TestHousekeeping_ClearKeepsReplacedToken(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	storetest.SeedUser(t, s.Users(), "ryan")

	tokens := s.RefreshTokens()
	sweeper := tokens.(store.SessionSweeper)
	require.NoError(t, tokens.SetRefreshToken(ctx, "ryan", "newer"))

	ok, err := sweeper.ClearRefreshToken(ctx, "ryan", "older")
	require.NoError(t, err)
	require.False(t, ok)

	got, err := tokens.GetRefreshToken(ctx, "ryan")
	require.NoError(t, err)
	require.Equal(t, "newer", got)
}

func TestHousekeeping_StartStop(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	storetest.SeedUser(t, s.Users(), "ryan")

	tokens := s.RefreshTokens()
	require.NoError(t, tokens.SetRefreshToken(ctx, "ryan", "garbage"))

	refresh, err := jwtx.NewCodec([]byte("refresh-secret"), refreshTTL)
	require.NoError(t, err)

	// The first sweep runs before the loop waits, and Stop waits for it.
	hk := NewHousekeepingService(tokens.(store.SessionSweeper), refresh, slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)
	hk.Start()
	hk.Stop()

	_, err = tokens.GetRefreshToken(ctx, "ryan")
	require.ErrorIs(t, err, store.ErrNotFound)
}
