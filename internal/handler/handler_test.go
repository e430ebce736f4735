package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/chetan-code/taskmanager/internal/apperr"
	"github.com/chetan-code/taskmanager/internal/models"
)

// --- in-memory fakes mirroring the repository contracts ---

type fakeUserRepo struct {
	users     map[string]*models.User //keyed by lower(email)
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := strings.ToLower(user.Email)
	if _, exists := f.users[key]; exists {
		return apperr.ErrDuplicateEmail
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	stored := *user
	f.users[key] = &stored
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	found := *user
	return &found, nil
}

type fakeTaskRepo struct {
	tasks map[string]*models.Task
	order []string
	err   error //forced storage failure
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*models.Task)}
}

func (f *fakeTaskRepo) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	var tasks []models.Task
	for _, id := range f.order {
		if t, ok := f.tasks[id]; ok && t.Owner == ownerID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

func (f *fakeTaskRepo) CreateTask(ctx context.Context, task *models.Task) error {
	if f.err != nil {
		return f.err
	}
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now
	stored := *task
	f.tasks[task.ID] = &stored
	f.order = append(f.order, task.ID)
	return nil
}

func (f *fakeTaskRepo) GetTask(ctx context.Context, id string) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	found := *task
	return &found, nil
}

func (f *fakeTaskRepo) UpdateTask(ctx context.Context, task *models.Task) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.tasks[task.ID]; !ok {
		return apperr.ErrNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	stored := *task
	f.tasks[task.ID] = &stored
	return nil
}

func (f *fakeTaskRepo) DeleteTask(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.tasks[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

// --- server wiring for tests ---

type testEnv struct {
	router *mux.Router
	auth   *AuthHandler
	users  *fakeUserRepo
	tasks  *fakeTaskRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserRepo()
	tasks := newFakeTaskRepo()
	//low bcrypt cost keeps the tests fast
	auth := NewAuthHandler(users, "test-secret", time.Hour, 4)
	taskHandler := NewTaskHandler(tasks)

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/register", auth.RegisterHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", auth.LoginHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks", auth.Middleware(taskHandler.ListHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", auth.Middleware(taskHandler.CreateHandler)).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}", auth.Middleware(taskHandler.UpdateHandler)).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{id}", auth.Middleware(taskHandler.DeleteHandler)).Methods(http.MethodDelete)

	return &testEnv{router: r, auth: auth, users: users, tasks: tasks}
}
