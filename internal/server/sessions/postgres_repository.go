package sessions

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Add(ctx context.Context, userID string, token string) error {

	query :=
		`INSERT INTO session_tokens (user_id, token)
         VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID string, token string) (bool, error) {

	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM session_tokens WHERE user_id = $1 AND token = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("error performing sql request: %v", err)
	}

	return exists, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, token string) error {

	query := `DELETE FROM session_tokens WHERE user_id = $1 AND token = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context, userID string) error {

	query := `DELETE FROM session_tokens WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}
