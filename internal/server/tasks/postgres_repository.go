package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atfurman/taskapp/internal/common"
	"github.com/atfurman/taskapp/internal/server/models"
)

// sortColumns maps external sort field names to actual columns. Anything
// not listed here is ignored by List.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (description, completed, owner)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, task.Description, task.Completed, task.Owner).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return task, nil
}

func (r *PostgresRepository) List(ctx context.Context, owner string, opts ListOptions) ([]*models.Task, error) {

	query :=
		`SELECT id, description, completed, owner, created_at, updated_at
		 FROM tasks
		 WHERE owner = $1`
	args := []any{owner}

	if opts.Completed != nil {
		query += fmt.Sprintf(" AND completed = $%d", len(args)+1)
		args = append(args, *opts.Completed)
	}

	if col, ok := sortColumns[opts.SortBy]; ok {
		query += " ORDER BY " + col
		if opts.Desc {
			query += " DESC"
		}
	} else {
		query += " ORDER BY created_at"
	}

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	if opts.Skip > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Skip)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.ID, &task.Description, &task.Completed, &task.Owner, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return tasks, nil
}

func (r *PostgresRepository) GetByOwnerAndID(ctx context.Context, owner, id string) (*models.Task, error) {

	query :=
		`SELECT id, description, completed, owner, created_at, updated_at
		 FROM tasks
		 WHERE id = $1 AND owner = $2
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, owner).
		Scan(&task.ID, &task.Description, &task.Completed, &task.Owner, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {

	query :=
		`UPDATE tasks
		 SET description = $3, completed = $4, updated_at = now()
		 WHERE id = $1 AND owner = $2
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, task.ID, task.Owner, task.Description, task.Completed).
		Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, owner, id string) (*models.Task, error) {

	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND owner = $2
		 RETURNING id, description, completed, owner, created_at, updated_at
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, owner).
		Scan(&task.ID, &task.Description, &task.Completed, &task.Owner, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return task, nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, owner string) error {

	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE owner = $1`, owner); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}
