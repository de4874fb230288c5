package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/pkg/idx"
)

// NoteInput is the writable part of a note.
type NoteInput struct {
	NoteName string
	FolderID string
	Content  string
}

type NoteService struct {
	Notes store.Notes

	// Now stamps modified times. Defaults to time.Now.
	Now func() time.Time
}

func (s *NoteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *NoteService) validate(in NoteInput) (NoteInput, error) {
	name, err := cleanName("note_name", in.NoteName)
	if err != nil {
		return NoteInput{}, err
	}
	if in.FolderID == "" {
		return NoteInput{}, invalid("Missing 'folder_id' in request body")
	}
	in.NoteName = name
	return in, nil
}

func (s *NoteService) List(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	return s.Notes.ListNotes(ctx, filter)
}

func (s *NoteService) Get(ctx context.Context, id string) (domain.Note, error) {
	n, err := s.Notes.GetNote(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Note{}, ErrNoteNotFound
	}
	return n, err
}

func (s *NoteService) Create(ctx context.Context, in NoteInput) (domain.Note, error) {
	in, err := s.validate(in)
	if err != nil {
		return domain.Note{}, err
	}

	n := domain.Note{
		ID:       idx.New().String(),
		NoteName: in.NoteName,
		Modified: s.now(),
		FolderID: in.FolderID,
		Content:  in.Content,
	}
	if err := s.Notes.CreateNote(ctx, n); err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			return domain.Note{}, invalid("'folder_id' does not refer to an existing folder")
		}
		return domain.Note{}, err
	}
	return n, nil
}

// Update replaces the note's fields and bumps its modified time.
func (s *NoteService) Update(ctx context.Context, id string, in NoteInput) (domain.Note, error) {
	in, err := s.validate(in)
	if err != nil {
		return domain.Note{}, err
	}

	n := domain.Note{
		ID:       id,
		NoteName: in.NoteName,
		Modified: s.now(),
		FolderID: in.FolderID,
		Content:  in.Content,
	}
	if err := s.Notes.UpdateNote(ctx, n); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.Note{}, ErrNoteNotFound
		case errors.Is(err, store.ErrInvalidReference):
			return domain.Note{}, invalid("'folder_id' does not refer to an existing folder")
		}
		return domain.Note{}, err
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	err := s.Notes.DeleteNote(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoteNotFound
	}
	return err
}
