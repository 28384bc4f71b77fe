package handlers

import (
	"errors"
	"net/http"

	"taskblog/internal/handlers/dto"
	"taskblog/internal/logger"
	"taskblog/internal/models"
	"taskblog/internal/repository"
	"taskblog/internal/service"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// GET /api/tasks
func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: list tasks")

	page, limit := pageParams(r)
	filter := repository.TaskFilter{
		Status:   models.TaskStatus(r.URL.Query().Get("status")),
		Priority: models.TaskPriority(r.URL.Query().Get("priority")),
		Page:     page,
		Limit:    limit,
		SortBy:   r.URL.Query().Get("sortBy"),
		Order:    r.URL.Query().Get("order"),
	}

	tasks, total, err := h.service.ListTasks(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(tasks),
		"total":   total,
		"page":    page,
		"pages":   totalPages(total, limit),
		"data":    dto.FromTaskList(tasks),
	})
}

// GET /api/tasks/{id}
func (h *TaskHandler) GetTaskById(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: get task")

	task, err := h.service.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.taskError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    dto.FromTask(task),
	})
}

// POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: create task")

	var req dto.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.service.CreateTask(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate.TimePtr(),
		AssignedTo:  req.AssignedTo,
		Tags:        req.Tags,
	})
	if err != nil {
		h.taskError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Task created successfully",
		"data":    dto.FromTask(task),
	})
}

// PUT /api/tasks/{id} — only fields present in the body are applied.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: update task")

	var req dto.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var opts []service.TaskOption
	if req.Title != nil {
		opts = append(opts, service.WithTitle(*req.Title))
	}
	if req.Description != nil {
		opts = append(opts, service.WithDescription(*req.Description))
	}
	if req.Status != nil {
		opts = append(opts, service.WithStatus(models.TaskStatus(*req.Status)))
	}
	if req.Priority != nil {
		opts = append(opts, service.WithPriority(models.TaskPriority(*req.Priority)))
	}
	if req.DueDate != nil {
		opts = append(opts, service.WithDueDate(req.DueDate.TimePtr()))
	}
	if req.AssignedTo != nil {
		opts = append(opts, service.WithAssignedTo(*req.AssignedTo))
	}
	if req.Tags != nil {
		opts = append(opts, service.WithTags(*req.Tags))
	}

	task, err := h.service.UpdateTask(r.Context(), chi.URLParam(r, "id"), opts...)
	if err != nil {
		h.taskError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Task updated successfully",
		"data":    dto.FromTask(task),
	})
}

// DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: delete task")

	if err := h.service.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.taskError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Task deleted successfully",
		"data":    map[string]any{},
	})
}

// GET /api/tasks/stats/overview
func (h *TaskHandler) GetTaskStats(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "http: task stats")

	stats, err := h.service.TaskStats(r.Context())
	if err != nil {
		h.taskError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    stats,
	})
}

// taskError keeps the task endpoints' {success,message} error envelope.
func (h *TaskHandler) taskError(w http.ResponseWriter, err error) {
	var busErr *service.BusinessError
	if errors.As(err, &busErr) {
		respondJSON(w, statusForCode(busErr.Code), map[string]any{
			"success": false,
			"message": busErr.Message,
		})
		return
	}
	logger.Error("http: unhandled error", err)
	respondJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"message": "Internal server error",
	})
}
