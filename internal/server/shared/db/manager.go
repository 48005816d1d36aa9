package db

import (
	"context"
	"database/sql"

	"github.com/atfurman/taskapp/internal/server/sessions"
	"github.com/atfurman/taskapp/internal/server/tasks"
	"github.com/atfurman/taskapp/internal/server/users"
)

// RepositoryManager owns the database handle and hands out the per-domain
// repositories built on it.
type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Sessions() sessions.Repository
	Tasks() tasks.Repository
	RunMigrations(ctx context.Context) error
}
