package sqldb

import (
	"context"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
)

type notesRepo struct {
	q *Queries
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (domain.Note, error) {
	var n domain.Note
	err := s.Scan(&n.ID, &n.NoteName, &n.Modified, &n.FolderID, &n.Content)
	n.Modified = n.Modified.UTC()
	return n, err
}

const noteColumns = `id, note_name, modified, folder_id, content`

func (r *notesRepo) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes`
	var args []any
	if filter.FolderID != "" {
		query += ` WHERE folder_id = ?`
		args = append(args, filter.FolderID)
	}
	query += ` ORDER BY id`

	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notesRepo) GetNote(ctx context.Context, id string) (domain.Note, error) {
	n, err := scanNote(r.q.queryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id))
	if err != nil {
		return domain.Note{}, r.q.d.mapError(err)
	}
	return n, nil
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	_, err := r.q.exec(ctx, `
		INSERT INTO notes (id, note_name, modified, folder_id, content)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.NoteName, n.Modified.UTC(), n.FolderID, n.Content,
	)
	return err
}

func (r *notesRepo) UpdateNote(ctx context.Context, n domain.Note) error {
	return r.q.execOne(ctx, `
		UPDATE notes
		SET note_name = ?, modified = ?, folder_id = ?, content = ?
		WHERE id = ?`,
		n.NoteName, n.Modified.UTC(), n.FolderID, n.Content, n.ID,
	)
}

func (r *notesRepo) DeleteNote(ctx context.Context, id string) error {
	return r.q.execOne(ctx, `DELETE FROM notes WHERE id = ?`, id)
}
