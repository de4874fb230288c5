package authsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ============================================================================
// Folder Operations
// ============================================================================

// ListFolders returns every folder.
func (s *Session) ListFolders(ctx context.Context) ([]Folder, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/folders", nil)
	if err != nil {
		return nil, err
	}

	var folders []Folder
	if err := decodeJSON(resp, &folders, http.StatusOK); err != nil {
		return nil, err
	}
	return folders, nil
}

// GetFolder returns a folder by ID.
func (s *Session) GetFolder(ctx context.Context, id string) (*Folder, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/folders/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var folder Folder
	if err := decodeJSON(resp, &folder, http.StatusOK); err != nil {
		return nil, err
	}
	return &folder, nil
}

// CreateFolder creates a folder named name.
func (s *Session) CreateFolder(ctx context.Context, name string) (*Folder, error) {
	body, err := json.Marshal(FolderRequest{FolderName: name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/folders", body)
	if err != nil {
		return nil, err
	}

	var folder Folder
	if err := decodeJSON(resp, &folder, http.StatusCreated); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RenameFolder changes a folder's name.
func (s *Session) RenameFolder(ctx context.Context, id, name string) (*Folder, error) {
	body, err := json.Marshal(FolderRequest{FolderName: name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/api/folders/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}

	var folder Folder
	if err := decodeJSON(resp, &folder, http.StatusOK); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder deletes a folder and every note in it.
func (s *Session) DeleteFolder(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/folders/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// ============================================================================
// Note Operations
// ============================================================================

// ListNotes returns notes, restricted to one folder when folderID is set.
func (s *Session) ListNotes(ctx context.Context, folderID string) ([]Note, error) {
	path := "/api/notes"
	if folderID != "" {
		path += "?" + url.Values{"folder_id": {folderID}}.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var notes []Note
	if err := decodeJSON(resp, &notes, http.StatusOK); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote returns a note by ID.
func (s *Session) GetNote(ctx context.Context, id string) (*Note, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote creates a note.
func (s *Session) CreateNote(ctx context.Context, req NoteRequest) (*Note, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/notes", body)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusCreated); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces a note's name, folder and content.
func (s *Session) UpdateNote(ctx context.Context, id string, req NoteRequest) (*Note, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/api/notes/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}

	var note Note
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote deletes a note.
func (s *Session) DeleteNote(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}
