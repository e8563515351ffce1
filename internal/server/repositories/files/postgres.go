package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/privafile/privafile/internal/common"
	"github.com/privafile/privafile/internal/dbx"
	"github.com/privafile/privafile/internal/server/models"
)

// PostgresRepository implements file-catalog storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) error {
	query :=
		`INSERT INTO files (id, mime, hash, owner_id, status, total_size)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.Mime, file.Hash, file.OwnerID, file.Status, file.TotalSize)
	if err != nil {
		return fmt.Errorf("insert file %s: %w", file.ID, err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query :=
		`SELECT id, mime, hash, owner_id, status, total_size, created_at FROM files
		 WHERE id = $1
		 `

	file := &models.File{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&file.ID, &file.Mime, &file.Hash, &file.OwnerID, &file.Status, &file.TotalSize, &file.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("select file %s: %w", id, err)
	}

	return file, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) UpdateHash(ctx context.Context, id string, hash string) error {
	query := `UPDATE files SET hash = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("update file hash %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE files SET status = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update file status %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, mimeFilter *string, limit *int) ([]*models.File, error) {
	query :=
		`SELECT id, mime, hash, owner_id, status, total_size, created_at FROM files
		 WHERE owner_id = $1
		 `
	args := []any{ownerID}

	if mimeFilter != nil {
		args = append(args, *mimeFilter)
		query += fmt.Sprintf(" AND mime = $%d", len(args))
	}
	query += " ORDER BY created_at"
	if limit != nil {
		args = append(args, *limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select files of owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.Mime, &item.Hash, &item.OwnerID, &item.Status, &item.TotalSize, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
