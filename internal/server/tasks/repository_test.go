package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/atfurman/taskapp/internal/common"
	"github.com/atfurman/taskapp/internal/server/models"
)

func TestParseListOptions(t *testing.T) {

	boolPtr := func(v bool) *bool { return &v }

	tests := []struct {
		name      string
		completed string
		sortBy    string
		limit     string
		skip      string
		expected  ListOptions
	}{
		{name: "empty", expected: ListOptions{}},
		{name: "completed true", completed: "true", expected: ListOptions{Completed: boolPtr(true)}},
		{name: "completed anything else is false", completed: "yes", expected: ListOptions{Completed: boolPtr(false)}},
		{name: "sort desc", sortBy: "createdAt:desc", expected: ListOptions{SortBy: "createdAt", Desc: true}},
		{name: "sort asc by default", sortBy: "description", expected: ListOptions{SortBy: "description"}},
		{name: "pagination", limit: "10", skip: "20", expected: ListOptions{Limit: 10, Skip: 20}},
		{name: "bad numbers degrade to unset", limit: "ten", skip: "-5", expected: ListOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseListOptions(tt.completed, tt.sortBy, tt.limit, tt.skip)

			if (got.Completed == nil) != (tt.expected.Completed == nil) {
				t.Fatalf("Completed mismatch: %+v", got)
			}
			if got.Completed != nil && *got.Completed != *tt.expected.Completed {
				t.Fatalf("Completed value mismatch: %+v", got)
			}
			if got.SortBy != tt.expected.SortBy || got.Desc != tt.expected.Desc {
				t.Fatalf("sort mismatch: %+v", got)
			}
			if got.Limit != tt.expected.Limit || got.Skip != tt.expected.Skip {
				t.Fatalf("pagination mismatch: %+v", got)
			}
		})
	}
}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	repo, err := NewPostgresRepository(db)
	if err != nil {
		t.Fatalf("NewPostgresRepository error: %v", err)
	}
	return repo, mock, db
}

const taskColumns = `id,\s*description,\s*completed,\s*owner,\s*created_at,\s*updated_at`

func taskRows(ids ...string) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "description", "completed", "owner", "created_at", "updated_at"})
	for _, id := range ids {
		rows.AddRow(id, "desc "+id, false, "u-1", now, now)
	}
	return rows
}

func TestList_DefaultOrder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + taskColumns + `\s+FROM\s+tasks\s+WHERE\s+owner\s*=\s*\$1\s+ORDER\s+BY\s+created_at$`

	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(taskRows("t-1", "t-2"))

	tasks, err := repo.List(context.Background(), "u-1", ListOptions{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestList_FilterSortPaginate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + taskColumns + `\s+FROM\s+tasks\s+WHERE\s+owner\s*=\s*\$1\s+AND\s+completed\s*=\s*\$2\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+10\s+OFFSET\s+20$`

	completed := true
	mock.ExpectQuery(q).
		WithArgs("u-1", true).
		WillReturnRows(taskRows("t-1"))

	tasks, err := repo.List(context.Background(), "u-1", ListOptions{
		Completed: &completed,
		SortBy:    "createdAt",
		Desc:      true,
		Limit:     10,
		Skip:      20,
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
}

func TestList_UnknownSortFieldIgnored(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + taskColumns + `\s+FROM\s+tasks\s+WHERE\s+owner\s*=\s*\$1\s+ORDER\s+BY\s+created_at$`

	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(taskRows())

	tasks, err := repo.List(context.Background(), "u-1", ListOptions{SortBy: "owner; DROP TABLE tasks"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if tasks == nil {
		t.Fatalf("expected non-nil empty slice")
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty result, got %d", len(tasks))
	}
}

func TestGetByOwnerAndID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + taskColumns + `\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner\s*=\s*\$2\s*$`

	mock.ExpectQuery(q).
		WithArgs("t-1", "u-other").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByOwnerAndID(context.Background(), "u-other", "t-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete_ReturnsRemovedTask(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner\s*=\s*\$2\s+RETURNING\s+` + taskColumns + `\s*$`

	mock.ExpectQuery(q).
		WithArgs("t-1", "u-1").
		WillReturnRows(taskRows("t-1"))

	task, err := repo.Delete(context.Background(), "u-1", "t-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if task.ID != "t-1" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestDelete_ForeignTaskIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^DELETE\s+FROM\s+tasks`).
		WithArgs("t-1", "u-other").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), "u-other", "t-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+tasks\s*\(description,\s*completed,\s*owner\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("t-1", now, now)
	mock.ExpectQuery(q).
		WithArgs("buy milk", false, "u-1").
		WillReturnRows(rows)

	task, err := repo.Create(context.Background(), &models.Task{Description: "buy milk", Owner: "u-1"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if task.ID != "t-1" {
		t.Fatalf("unexpected task: %+v", task)
	}
}
