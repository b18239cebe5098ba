package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skyvault/skyvault-server/internal/model"
)

var _ model.FolderStore = (*FolderRepository)(nil)

type FolderRepository struct {
	db *Connection
}

func NewFolderRepository(db *Connection) *FolderRepository {
	return &FolderRepository{
		db: db,
	}
}

func (r *FolderRepository) Create(ctx context.Context, folder model.SharedFolder) (model.SharedFolder, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.SharedFolder{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO folders (id, name, owner_id)
			  VALUES ($1, $2, $3)
			  RETURNING id, name, owner_id, created_at`

	var saved model.SharedFolder
	err = tx.QueryRow(ctx, query, folder.ID, folder.Name, folder.OwnerID).Scan(
		&saved.ID, &saved.Name, &saved.OwnerID, &saved.CreatedAt,
	)
	if err != nil {
		return model.SharedFolder{}, fmt.Errorf("failed to insert folder: %w", err)
	}

	for _, memberID := range folder.MemberIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO folder_members (folder_id, user_id) VALUES ($1, $2)`,
			folder.ID, memberID,
		)
		if err != nil {
			return model.SharedFolder{}, fmt.Errorf("failed to insert folder member: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.SharedFolder{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	saved.MemberIDs = folder.MemberIDs
	return saved, nil
}

func (r *FolderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.SharedFolder, error) {
	query := `
		SELECT f.id, f.name, f.owner_id, f.created_at,
		       COALESCE(array_agg(m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}')
		FROM folders f
		LEFT JOIN folder_members m ON m.folder_id = f.id
		WHERE f.id = $1
		GROUP BY f.id`

	var folder model.SharedFolder
	err := r.db.QueryRow(ctx, query, id).Scan(
		&folder.ID, &folder.Name, &folder.OwnerID, &folder.CreatedAt, &folder.MemberIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SharedFolder{}, model.ErrNotFound
		}
		return model.SharedFolder{}, fmt.Errorf("failed to get folder by id: %w", err)
	}

	return folder, nil
}

func (r *FolderRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.SharedFolder, error) {
	query := `
		SELECT f.id, f.name, f.owner_id, f.created_at,
		       COALESCE(array_agg(m.user_id) FILTER (WHERE m.user_id IS NOT NULL), '{}')
		FROM folders f
		LEFT JOIN folder_members m ON m.folder_id = f.id
		WHERE f.owner_id = $1
		   OR f.id IN (SELECT folder_id FROM folder_members WHERE user_id = $1)
		GROUP BY f.id
		ORDER BY f.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders for user: %w", err)
	}
	defer rows.Close()

	var folders []model.SharedFolder
	for rows.Next() {
		var folder model.SharedFolder
		err := rows.Scan(&folder.ID, &folder.Name, &folder.OwnerID, &folder.CreatedAt, &folder.MemberIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate folders: %w", err)
	}

	return folders, nil
}

func (r *FolderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// folder_members rows go with the folder via ON DELETE CASCADE.
	cmd, err := r.db.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
