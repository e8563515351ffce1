package chunks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/privafile/privafile/internal/common"
	"github.com/privafile/privafile/internal/dbx"
	"github.com/privafile/privafile/internal/server/models"
)

// PostgresRepository implements chunk-catalog storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, chunk *models.Chunk) error {
	query :=
		`INSERT INTO chunks (id, file_id, chunk_index, hash, size, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		chunk.ID, chunk.FileID, chunk.ChunkIndex, chunk.Hash, chunk.Size, chunk.Status)
	if err != nil {
		return fmt.Errorf("insert chunk %s: %w", chunk.ID, err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Chunk, error) {
	query :=
		`SELECT id, file_id, chunk_index, hash, size, status, created_at FROM chunks
		 WHERE id = $1
		 `

	chunk := &models.Chunk{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&chunk.ID, &chunk.FileID, &chunk.ChunkIndex, &chunk.Hash, &chunk.Size, &chunk.Status, &chunk.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("select chunk %s: %w", id, err)
	}

	return chunk, nil
}

func (r *PostgresRepository) ListByFile(ctx context.Context, fileID string) ([]*models.Chunk, error) {
	query :=
		`SELECT id, file_id, chunk_index, hash, size, status, created_at FROM chunks
		 WHERE file_id = $1
		 ORDER BY chunk_index ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("select chunks of file %s: %w", fileID, err)
	}
	defer rows.Close()

	var result []*models.Chunk
	for rows.Next() {
		var item models.Chunk
		if err := rows.Scan(&item.ID, &item.FileID, &item.ChunkIndex, &item.Hash, &item.Size, &item.Status, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) CountByFile(ctx context.Context, fileID string) (int64, error) {
	query := `SELECT COUNT(id) FROM chunks WHERE file_id = $1`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, fileID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks of file %s: %w", fileID, err)
	}

	return n, nil
}

// DeleteByFile removes every chunk row of the file. Zero affected rows is
// not an error: a file uploaded through the whole-blob path has none.
func (r *PostgresRepository) DeleteByFile(ctx context.Context, fileID string) error {
	query := `DELETE FROM chunks WHERE file_id = $1`

	if _, err := r.db.ExecContext(ctx, query, fileID); err != nil {
		return fmt.Errorf("delete chunks of file %s: %w", fileID, err)
	}

	return nil
}
