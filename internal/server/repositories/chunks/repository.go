package chunks

import (
	"context"

	"github.com/privafile/privafile/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, chunk *models.Chunk) error
	GetByID(ctx context.Context, id string) (*models.Chunk, error)
	// ListByFile returns the file's chunks ordered by chunk_index ascending.
	ListByFile(ctx context.Context, fileID string) ([]*models.Chunk, error)
	CountByFile(ctx context.Context, fileID string) (int64, error)
	DeleteByFile(ctx context.Context, fileID string) error
}
