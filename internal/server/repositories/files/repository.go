package files

import (
	"context"

	"github.com/privafile/privafile/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, id string) (*models.File, error)
	Delete(ctx context.Context, id string) error
	UpdateHash(ctx context.Context, id string, hash string) error
	UpdateStatus(ctx context.Context, id string, status string) error
	// ListByOwner returns the owner's files, optionally filtered by exact
	// mime type and capped at limit rows. Nil means no filter / no cap.
	ListByOwner(ctx context.Context, ownerID string, mimeFilter *string, limit *int) ([]*models.File, error)
}
