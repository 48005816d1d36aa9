package users

import (
	"context"

	"github.com/atfurman/taskapp/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	// SetAvatar replaces the stored avatar blob and/or object key;
	// nil data and empty key clear it.
	SetAvatar(ctx context.Context, id string, avatar []byte, key string) error
	GetAvatar(ctx context.Context, id string) ([]byte, error)
}
