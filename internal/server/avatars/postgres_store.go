package avatars

import (
	"context"

	"github.com/atfurman/taskapp/internal/server/models"
)

// PostgresStore keeps avatar bytes in the bytea column on the user row.
// This is the default backend.
type PostgresStore struct {
	repo Repository
}

func NewPostgresStore(repo Repository) *PostgresStore {
	return &PostgresStore{repo: repo}
}

func (s *PostgresStore) Put(ctx context.Context, user *models.User, data []byte) error {
	return s.repo.SetAvatar(ctx, user.ID, data, "")
}

func (s *PostgresStore) Get(ctx context.Context, user *models.User) ([]byte, error) {
	return s.repo.GetAvatar(ctx, user.ID)
}

func (s *PostgresStore) Delete(ctx context.Context, user *models.User) error {
	return s.repo.SetAvatar(ctx, user.ID, nil, "")
}
