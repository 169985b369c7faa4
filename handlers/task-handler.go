package handlers

import (
	"context"
	"net/http"

	"task-management/backend/models"
	"task-management/backend/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskManager interface {
	CreateTask(ctx context.Context, in services.TaskInput) (*models.Task, error)
	GetTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	UpdateTask(ctx context.Context, id primitive.ObjectID, in services.TaskInput) (*models.Task, error)
	AssignTask(ctx context.Context, taskID, userID primitive.ObjectID) (*models.Task, error)
	DeleteTask(ctx context.Context, id primitive.ObjectID) error
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	Activity(ctx context.Context, id primitive.ObjectID) ([]models.TaskActivity, error)
}

type TaskHandler struct {
	service TaskManager
}

func NewTaskHandler(service TaskManager) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	var in services.TaskInput
	if !decodeJSON(w, r, &in) {
		return
	}

	task, err := h.service.CreateTask(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in services.TaskInput
	if !decodeJSON(w, r, &in) {
		return
	}

	task, err := h.service.UpdateTask(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.service.AssignTask(r.Context(), taskID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) TaskActivity(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, teamMembers) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	activity, err := h.service.Activity(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (h *TaskHandler) TasksByProject(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, nil) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	tasks, err := h.service.ListByProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) TasksByUser(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, userTaskReaders) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	tasks, err := h.service.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
