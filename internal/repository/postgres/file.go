package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skyvault/skyvault-server/internal/model"
)

var _ model.FileStore = (*FileRepository)(nil)

type FileRepository struct {
	db *Connection
}

func NewFileRepository(db *Connection) *FileRepository {
	return &FileRepository{
		db: db,
	}
}

func (r *FileRepository) Create(ctx context.Context, file model.StoredFile) (model.StoredFile, error) {
	query := `
		INSERT INTO files (id, scope, owner_id, folder_id, uploader_id, name, size, object_key)
		VALUES ($1, $2, NULLIF($3::uuid, '00000000-0000-0000-0000-000000000000'),
		        NULLIF($4::uuid, '00000000-0000-0000-0000-000000000000'), $5, $6, $7, $8)
		RETURNING id, scope,
		          COALESCE(owner_id, '00000000-0000-0000-0000-000000000000'),
		          COALESCE(folder_id, '00000000-0000-0000-0000-000000000000'),
		          uploader_id, name, size, object_key, created_at`

	var saved model.StoredFile
	err := r.db.QueryRow(ctx, query,
		file.ID, string(file.Scope), file.OwnerID, file.FolderID,
		file.UploaderID, file.Name, file.Size, file.ObjectKey,
	).Scan(
		&saved.ID, &saved.Scope, &saved.OwnerID, &saved.FolderID,
		&saved.UploaderID, &saved.Name, &saved.Size, &saved.ObjectKey, &saved.CreatedAt,
	)
	if err != nil {
		return model.StoredFile{}, fmt.Errorf("failed to create file: %w", err)
	}

	return saved, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.StoredFile, error) {
	query := `
		SELECT id, scope,
		       COALESCE(owner_id, '00000000-0000-0000-0000-000000000000'),
		       COALESCE(folder_id, '00000000-0000-0000-0000-000000000000'),
		       uploader_id, name, size, object_key, created_at
		FROM files WHERE id = $1`

	var file model.StoredFile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID, &file.Scope, &file.OwnerID, &file.FolderID,
		&file.UploaderID, &file.Name, &file.Size, &file.ObjectKey, &file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.StoredFile{}, model.ErrNotFound
		}
		return model.StoredFile{}, fmt.Errorf("failed to get file by id: %w", err)
	}

	return file, nil
}

func (r *FileRepository) ListPersonal(ctx context.Context, ownerID uuid.UUID) ([]model.StoredFile, error) {
	query := `
		SELECT id, scope,
		       COALESCE(owner_id, '00000000-0000-0000-0000-000000000000'),
		       COALESCE(folder_id, '00000000-0000-0000-0000-000000000000'),
		       uploader_id, name, size, object_key, created_at
		FROM files
		WHERE scope = 'personal' AND owner_id = $1
		ORDER BY created_at DESC`

	return r.queryFiles(ctx, query, ownerID)
}

func (r *FileRepository) ListFolder(ctx context.Context, folderID uuid.UUID) ([]model.StoredFile, error) {
	query := `
		SELECT id, scope,
		       COALESCE(owner_id, '00000000-0000-0000-0000-000000000000'),
		       COALESCE(folder_id, '00000000-0000-0000-0000-000000000000'),
		       uploader_id, name, size, object_key, created_at
		FROM files
		WHERE scope = 'shared' AND folder_id = $1
		ORDER BY created_at DESC`

	return r.queryFiles(ctx, query, folderID)
}

func (r *FileRepository) CountPersonal(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM files WHERE scope = 'personal' AND owner_id = $1`, ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count personal files: %w", err)
	}
	return count, nil
}

func (r *FileRepository) NameExists(ctx context.Context, scope model.FileScope, containerID uuid.UUID, name string) (bool, error) {
	var query string
	switch scope {
	case model.ScopePersonal:
		query = `SELECT EXISTS(SELECT 1 FROM files WHERE scope = 'personal' AND owner_id = $1 AND name = $2)`
	case model.ScopeShared:
		query = `SELECT EXISTS(SELECT 1 FROM files WHERE scope = 'shared' AND folder_id = $1 AND name = $2)`
	default:
		return false, fmt.Errorf("unknown file scope %q", scope)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, containerID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check file name: %w", err)
	}
	return exists, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *FileRepository) queryFiles(ctx context.Context, query string, arg any) ([]model.StoredFile, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []model.StoredFile
	for rows.Next() {
		var file model.StoredFile
		err := rows.Scan(
			&file.ID, &file.Scope, &file.OwnerID, &file.FolderID,
			&file.UploaderID, &file.Name, &file.Size, &file.ObjectKey, &file.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate files: %w", err)
	}

	return files, nil
}
