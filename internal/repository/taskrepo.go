package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chetan-code/taskmanager/internal/apperr"
	"github.com/chetan-code/taskmanager/internal/models"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) (*TaskRepo, error) {
	repo := &TaskRepo{db: db}

	err := repo.CreateTable()
	if err != nil {
		return nil, fmt.Errorf("could not initialize tasks table: %w", err)
	}

	return repo, nil
}

func (r *TaskRepo) CreateTable() error {
	createTableQuery := `CREATE TABLE IF NOT EXISTS tasks(
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		owner TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
	_, err := r.db.Exec(createTableQuery)
	if err != nil {
		return err
	}

	createIndexQuery := "CREATE INDEX IF NOT EXISTS tasks_owner_idx ON tasks (owner)"
	_, err = r.db.Exec(createIndexQuery)
	return err
}

// ListTasks returns only the caller's rows, oldest first.
func (r *TaskRepo) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	query := "SELECT id, title, description, completed, owner, created_at, updated_at FROM tasks WHERE owner = $1 ORDER BY created_at ASC"
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Owner, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			slog.Error("task_row_scan_failed", "error", err)
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepo) CreateTask(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := "INSERT INTO tasks (id, title, description, completed, owner, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)"
	_, err := r.db.ExecContext(ctx, query, task.ID, task.Title, task.Description, task.Completed, task.Owner, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetTask(ctx context.Context, id string) (*models.Task, error) {
	query := "SELECT id, title, description, completed, owner, created_at, updated_at FROM tasks WHERE id = $1"

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&task.ID, &task.Title, &task.Description, &task.Completed, &task.Owner, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select task: %w", err)
	}

	return task, nil
}

// UpdateTask commits the merged record in a single write. Concurrent updates
// to the same row resolve by whichever write lands last.
func (r *TaskRepo) UpdateTask(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()

	query := "UPDATE tasks SET title = $1, description = $2, completed = $3, updated_at = $4 WHERE id = $5"
	res, err := r.db.ExecContext(ctx, query, task.Title, task.Description, task.Completed, task.UpdatedAt, task.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows affected: %w", err)
	}
	if affected == 0 {
		//row vanished between the ownership read and this write
		return apperr.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) DeleteTask(ctx context.Context, id string) error {
	query := "DELETE FROM tasks WHERE id = $1"
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
