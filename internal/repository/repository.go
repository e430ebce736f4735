package repository

import (
	"context"

	"github.com/chetan-code/taskmanager/internal/models"
)

// UserRepository persists accounts. CreateUser assigns the identity and
// creation timestamp on the passed user.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// TaskRepository persists tasks. CreateTask assigns identity and timestamps;
// UpdateTask writes the full merged record and bumps UpdatedAt.
type TaskRepository interface {
	ListTasks(ctx context.Context, ownerID string) ([]models.Task, error)
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id string) error
}
