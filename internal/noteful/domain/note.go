package domain

import "time"

type Note struct {
	ID       string    `json:"id"`
	NoteName string    `json:"note_name"`
	Modified time.Time `json:"modified"`
	FolderID string    `json:"folder_id"`
	Content  string    `json:"content"`
}

// NoteFilter narrows a note listing. Zero values match everything.
type NoteFilter struct {
	FolderID string
}
