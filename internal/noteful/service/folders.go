package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/pkg/idx"
)

const maxNameLen = 255

type FolderService struct {
	Folders store.Folders
}

func cleanName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", invalid(fmt.Sprintf("Missing '%s' in request body", field))
	case len(name) > maxNameLen:
		return "", invalid(fmt.Sprintf("'%s' must be at most %d characters", field, maxNameLen))
	}
	return name, nil
}

func (s *FolderService) List(ctx context.Context) ([]domain.Folder, error) {
	return s.Folders.ListFolders(ctx)
}

func (s *FolderService) Get(ctx context.Context, id string) (domain.Folder, error) {
	f, err := s.Folders.GetFolder(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Folder{}, ErrFolderNotFound
	}
	return f, err
}

func (s *FolderService) Create(ctx context.Context, name string) (domain.Folder, error) {
	name, err := cleanName("folder_name", name)
	if err != nil {
		return domain.Folder{}, err
	}

	f := domain.Folder{ID: idx.New().String(), FolderName: name}
	if err := s.Folders.CreateFolder(ctx, f); err != nil {
		return domain.Folder{}, err
	}
	return f, nil
}

func (s *FolderService) Rename(ctx context.Context, id, name string) (domain.Folder, error) {
	name, err := cleanName("folder_name", name)
	if err != nil {
		return domain.Folder{}, err
	}

	f := domain.Folder{ID: id, FolderName: name}
	if err := s.Folders.UpdateFolder(ctx, f); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Folder{}, ErrFolderNotFound
		}
		return domain.Folder{}, err
	}
	return f, nil
}

// Delete removes the folder together with its notes.
func (s *FolderService) Delete(ctx context.Context, id string) error {
	err := s.Folders.DeleteFolder(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrFolderNotFound
	}
	return err
}
