// Package storetest holds behaviour tests shared by every store driver.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Run exercises a migrated store returned by newStore. Each subtest gets a
// fresh store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("refresh tokens", func(t *testing.T) {
		s := newStore(t)
		RunRefreshTokens(t, s.Users(), s.RefreshTokens())
	})
	t.Run("folders", func(t *testing.T) { testFolders(t, newStore(t)) })
	t.Run("notes", func(t *testing.T) { testNotes(t, newStore(t)) })
}

// SeedUser inserts a user with a placeholder hash.
func SeedUser(t *testing.T, users store.Users, username string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$placeholder",
	}
	require.NoError(t, users.CreateUser(context.Background(), u))
	return u
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	users := s.Users()

	empty, err := users.IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	_, err = users.GetUserByUsername(ctx, "ryan")
	require.ErrorIs(t, err, store.ErrNotFound)

	created := SeedUser(t, users, "ryan")

	got, err := users.GetUserByUsername(ctx, "ryan")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.PasswordHash, got.PasswordHash)
	require.False(t, got.CreatedAt.IsZero())

	empty, err = users.IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)

	err = users.CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Username:     "ryan",
		PasswordHash: "x",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

// RunRefreshTokens checks the single-slot refresh token semantics. users is
// used to create the account the slot belongs to.
func RunRefreshTokens(t *testing.T, users store.Users, tokens store.RefreshTokens) {
	ctx := context.Background()
	creds := store.NewCredentialStore(users, tokens)

	require.ErrorIs(t, creds.SetRefreshToken(ctx, "ghost", "tok"), store.ErrNotFound)

	SeedUser(t, users, "ryan")

	_, err := creds.GetRefreshToken(ctx, "ryan")
	require.ErrorIs(t, err, store.ErrNotFound, "no session before first login")

	require.NoError(t, creds.SetRefreshToken(ctx, "ryan", "first"))
	got, err := creds.GetRefreshToken(ctx, "ryan")
	require.NoError(t, err)
	require.Equal(t, "first", got)

	require.NoError(t, creds.SetRefreshToken(ctx, "ryan", "second"))
	got, err = creds.GetRefreshToken(ctx, "ryan")
	require.NoError(t, err)
	require.Equal(t, "second", got, "writes overwrite the previous token")

	user, err := creds.FindUser(ctx, "ryan")
	require.NoError(t, err)
	require.Equal(t, "ryan", user.Username)
}

func testFolders(t *testing.T, s store.Store) {
	ctx := context.Background()
	folders := s.Folders()

	list, err := folders.ListFolders(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	f := domain.Folder{ID: idx.New().String(), FolderName: "Important"}
	require.NoError(t, folders.CreateFolder(ctx, f))
	require.ErrorIs(t, folders.CreateFolder(ctx, f), store.ErrAlreadyExists)

	got, err := folders.GetFolder(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, f, got)

	f.FolderName = "Super"
	require.NoError(t, folders.UpdateFolder(ctx, f))
	got, err = folders.GetFolder(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, "Super", got.FolderName)

	missing := idx.New().String()
	require.ErrorIs(t, folders.UpdateFolder(ctx, domain.Folder{ID: missing, FolderName: "x"}), store.ErrNotFound)
	_, err = folders.GetFolder(ctx, missing)
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err = folders.ListFolders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, folders.DeleteFolder(ctx, f.ID))
	require.ErrorIs(t, folders.DeleteFolder(ctx, f.ID), store.ErrNotFound)
}

func testNotes(t *testing.T, s store.Store) {
	ctx := context.Background()
	folders, notes := s.Folders(), s.Notes()

	a := domain.Folder{ID: idx.New().String(), FolderName: "A"}
	b := domain.Folder{ID: idx.New().String(), FolderName: "B"}
	require.NoError(t, folders.CreateFolder(ctx, a))
	require.NoError(t, folders.CreateFolder(ctx, b))

	modified := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	n1 := domain.Note{ID: idx.New().String(), NoteName: "Dogs", Modified: modified, FolderID: a.ID, Content: "woof"}
	n2 := domain.Note{ID: idx.New().String(), NoteName: "Cats", Modified: modified, FolderID: b.ID, Content: "meow"}
	require.NoError(t, notes.CreateNote(ctx, n1))
	require.NoError(t, notes.CreateNote(ctx, n2))

	orphan := domain.Note{ID: idx.New().String(), NoteName: "x", Modified: modified, FolderID: idx.New().String()}
	require.ErrorIs(t, notes.CreateNote(ctx, orphan), store.ErrInvalidReference)

	got, err := notes.GetNote(ctx, n1.ID)
	require.NoError(t, err)
	require.Equal(t, n1.NoteName, got.NoteName)
	require.Equal(t, n1.Content, got.Content)
	require.True(t, modified.Equal(got.Modified))

	all, err := notes.ListNotes(ctx, domain.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	inA, err := notes.ListNotes(ctx, domain.NoteFilter{FolderID: a.ID})
	require.NoError(t, err)
	require.Len(t, inA, 1)
	require.Equal(t, n1.ID, inA[0].ID)

	n1.Content = "bark"
	n1.FolderID = b.ID
	require.NoError(t, notes.UpdateNote(ctx, n1))
	got, err = notes.GetNote(ctx, n1.ID)
	require.NoError(t, err)
	require.Equal(t, "bark", got.Content)
	require.Equal(t, b.ID, got.FolderID)

	// Deleting a folder removes its notes.
	require.NoError(t, folders.DeleteFolder(ctx, b.ID))
	_, err = notes.GetNote(ctx, n2.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, notes.DeleteNote(ctx, n1.ID), store.ErrNotFound)
}
