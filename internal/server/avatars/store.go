package avatars

import (
	"context"

	"github.com/atfurman/taskapp/internal/server/models"
)

// Repository is the slice of the users repository the stores need.
type Repository interface {
	SetAvatar(ctx context.Context, id string, avatar []byte, key string) error
	GetAvatar(ctx context.Context, id string) ([]byte, error)
}

// BlobStore abstracts where normalized avatar bytes live. Both
// implementations present the same contract to the handlers: Get returns
// ErrorNotFound when the user has no avatar.
type BlobStore interface {
	Put(ctx context.Context, user *models.User, data []byte) error
	Get(ctx context.Context, user *models.User) ([]byte, error)
	Delete(ctx context.Context, user *models.User) error
}
