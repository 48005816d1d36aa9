package tasks

import (
	"context"
	"strconv"
	"strings"

	"github.com/atfurman/taskapp/internal/server/models"
)

// ListOptions narrows and orders an owner-scoped task listing. The zero
// value means "everything, storage order, unbounded".
type ListOptions struct {
	// Completed filters on the exact completion state when non-nil.
	Completed *bool

	// SortBy is a task field name (createdAt, updatedAt, description,
	// completed); unknown names are ignored.
	SortBy string
	Desc   bool

	// Limit and Skip paginate the result; zero means no bound.
	Limit int
	Skip  int
}

// ParseListOptions builds ListOptions from raw query parameters. Bad input
// never fails the request: non-numeric limit/skip and unknown sort fields
// degrade to "unset", matching the permissive behavior clients rely on.
// sortBy uses the "field:direction" form, direction defaulting to asc.
func ParseListOptions(completed, sortBy, limit, skip string) ListOptions {
	opts := ListOptions{}

	if completed != "" {
		v := completed == "true"
		opts.Completed = &v
	}

	if sortBy != "" {
		field, direction, _ := strings.Cut(sortBy, ":")
		opts.SortBy = field
		opts.Desc = direction == "desc"
	}

	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		opts.Limit = n
	}
	if n, err := strconv.Atoi(skip); err == nil && n > 0 {
		opts.Skip = n
	}

	return opts
}

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	List(ctx context.Context, owner string, opts ListOptions) ([]*models.Task, error)
	GetByOwnerAndID(ctx context.Context, owner, id string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error

	// Delete removes the owner's task and returns it, or ErrorNotFound
	// when no owned task matches.
	Delete(ctx context.Context, owner, id string) (*models.Task, error)

	DeleteByOwner(ctx context.Context, owner string) error
}
