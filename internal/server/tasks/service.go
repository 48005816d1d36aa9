// Package tasks implements owner-scoped task CRUD. Every operation takes
// the authenticated user's id and can only ever see that user's tasks; a
// task that exists but belongs to someone else is indistinguishable from a
// task that does not exist.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/atfurman/taskapp/internal/common"
	"github.com/atfurman/taskapp/internal/server/models"
)

// UpdateParams carries a partial task update; nil means "leave as is".
type UpdateParams struct {
	Description *string
	Completed   *bool
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new task for owner. Any owner value a client may have
// sent is irrelevant; the caller passes the authenticated user id.
func (s *Service) Create(ctx context.Context, owner, description string, completed bool) (*models.Task, error) {

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrorValidation)
	}

	task := &models.Task{
		Description: description,
		Completed:   completed,
		Owner:       owner,
	}

	task, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

func (s *Service) List(ctx context.Context, owner string, opts ListOptions) ([]*models.Task, error) {
	return s.repo.List(ctx, owner, opts)
}

func (s *Service) Get(ctx context.Context, owner, id string) (*models.Task, error) {
	return s.repo.GetByOwnerAndID(ctx, owner, id)
}

// Update applies a partial update to the owner's task. The fetch is already
// owner-scoped, so a foreign task id yields ErrorNotFound before anything
// is touched.
func (s *Service) Update(ctx context.Context, owner, id string, params UpdateParams) (*models.Task, error) {

	task, err := s.repo.GetByOwnerAndID(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		task.Description = strings.TrimSpace(*params.Description)
		if task.Description == "" {
			return nil, fmt.Errorf("%w: description is required", common.ErrorValidation)
		}
	}
	if params.Completed != nil {
		task.Completed = *params.Completed
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete is a single owner-scoped fetch-and-remove.
func (s *Service) Delete(ctx context.Context, owner, id string) (*models.Task, error) {
	return s.repo.Delete(ctx, owner, id)
}

// DeleteByOwner removes every task of a user; used by the account delete
// cascade.
func (s *Service) DeleteByOwner(ctx context.Context, owner string) error {
	return s.repo.DeleteByOwner(ctx, owner)
}
