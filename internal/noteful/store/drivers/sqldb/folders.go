package sqldb

import (
	"context"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
)

type foldersRepo struct {
	q *Queries
}

func (r *foldersRepo) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	rows, err := r.q.query(ctx, `SELECT id, folder_name FROM folders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Folder{}
	for rows.Next() {
		var f domain.Folder
		if err := rows.Scan(&f.ID, &f.FolderName); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *foldersRepo) GetFolder(ctx context.Context, id string) (domain.Folder, error) {
	var f domain.Folder
	err := r.q.queryRow(ctx, `SELECT id, folder_name FROM folders WHERE id = ?`, id).
		Scan(&f.ID, &f.FolderName)
	if err != nil {
		return domain.Folder{}, r.q.d.mapError(err)
	}
	return f, nil
}

func (r *foldersRepo) CreateFolder(ctx context.Context, f domain.Folder) error {
	_, err := r.q.exec(ctx, `INSERT INTO folders (id, folder_name) VALUES (?, ?)`, f.ID, f.FolderName)
	return err
}

func (r *foldersRepo) UpdateFolder(ctx context.Context, f domain.Folder) error {
	return r.q.execOne(ctx, `UPDATE folders SET folder_name = ? WHERE id = ?`, f.FolderName, f.ID)
}

func (r *foldersRepo) DeleteFolder(ctx context.Context, id string) error {
	return r.q.execOne(ctx, `DELETE FROM folders WHERE id = ?`, id)
}
