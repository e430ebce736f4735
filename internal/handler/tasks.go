package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/chetan-code/taskmanager/internal/apperr"
	"github.com/chetan-code/taskmanager/internal/models"
	"github.com/chetan-code/taskmanager/internal/repository"
)

type TaskHandler struct {
	repo repository.TaskRepository
}

func NewTaskHandler(repo repository.TaskRepository) *TaskHandler {
	return &TaskHandler{repo: repo}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// pointer fields so an absent field stays distinguishable from a zero value;
// nil means "leave the stored value alone"
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (h *TaskHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	tasks, err := h.repo.ListTasks(r.Context(), ownerID)
	if err != nil {
		slog.Error("task_list_failed", "error", err, "owner", ownerID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if tasks == nil {
		//an empty list serializes as [] rather than null
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	var req createTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	task := &models.Task{
		Title:       title,
		Description: models.ClampDescription(req.Description),
		Completed:   false,
		Owner:       ownerID,
	}
	err = h.repo.CreateTask(r.Context(), task)
	if err != nil {
		slog.Error("task_create_failed", "error", err, "owner", ownerID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}
	id := mux.Vars(r)["id"]

	var req updateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, ok := h.loadOwnedTask(w, r, id, ownerID)
	if !ok {
		return
	}

	//merge only the fields the request carries
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = models.ClampDescription(*req.Description)
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	err = h.repo.UpdateTask(r.Context(), task)
	if err != nil {
		h.writeStoreError(w, err, ownerID)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}
	id := mux.Vars(r)["id"]

	if _, ok := h.loadOwnedTask(w, r, id, ownerID); !ok {
		return
	}

	err = h.repo.DeleteTask(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err, ownerID)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "task deleted"})
}

// loadOwnedTask fetches the task and enforces the ownership gate before any
// mutation is attempted. On failure it has already written the response.
func (h *TaskHandler) loadOwnedTask(w http.ResponseWriter, r *http.Request, id, ownerID string) (*models.Task, bool) {
	task, err := h.repo.GetTask(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err, ownerID)
		return nil, false
	}
	if task.Owner != ownerID {
		writeError(w, http.StatusForbidden, "forbidden")
		return nil, false
	}
	return task, true
}

func (h *TaskHandler) writeStoreError(w http.ResponseWriter, err error, ownerID string) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	slog.Error("task_storage_failure", "error", err, "owner", ownerID)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
