package users

import (
	"context"

	"github.com/privafile/privafile/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
