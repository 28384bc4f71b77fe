package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskblog/internal/logger"
	"taskblog/internal/models"
	"taskblog/internal/repository"

	"go.uber.org/zap"
)

type TaskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	AssignedTo  string
	Tags        []string
}

// sortFields maps the public sortBy values onto stored field names.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"dueDate":   "due_date",
	"priority":  "priority",
	"title":     "title",
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]*models.Task, int, error) {
	if mapped, ok := sortFields[filter.SortBy]; ok {
		filter.SortBy = mapped
	} else {
		filter.SortBy = "created_at"
	}
	if filter.Order != "asc" {
		filter.Order = "desc"
	}

	tasks, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Task")
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}
	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	task := models.NewTask(in.Title, in.Description, in.Status, in.Priority, in.DueDate, in.AssignedTo, in.Tags)
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	logger.Info("service: task created", zap.String("task_id", task.ID))
	return task, nil
}

type TaskOption func(*models.Task)

func WithTitle(title string) TaskOption {
	return func(t *models.Task) { t.Title = title }
}

func WithDescription(description string) TaskOption {
	return func(t *models.Task) { t.Description = description }
}

func WithStatus(status models.TaskStatus) TaskOption {
	return func(t *models.Task) { t.Status = status }
}

func WithPriority(priority models.TaskPriority) TaskOption {
	return func(t *models.Task) { t.Priority = priority }
}

func WithDueDate(dueDate *time.Time) TaskOption {
	return func(t *models.Task) { t.DueDate = dueDate }
}

func WithAssignedTo(assignedTo string) TaskOption {
	return func(t *models.Task) { t.AssignedTo = assignedTo }
}

func WithTags(tags []string) TaskOption {
	return func(t *models.Task) { t.Tags = models.TrimTags(tags) }
}

// UpdateTask applies only the supplied options and maintains the
// completion timestamp across status transitions.
func (s *TaskService) UpdateTask(ctx context.Context, id string, opts ...TaskOption) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Task")
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}

	prev := task.Status
	for _, opt := range opts {
		opt(task)
	}
	task.StampCompletion(prev)

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	logger.Info("service: task updated", zap.String("task_id", task.ID))
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound("Task")
		}
		return fmt.Errorf("deleting task: %w", err)
	}

	logger.Info("service: task deleted", zap.String("task_id", id))
	return nil
}

func (s *TaskService) TaskStats(ctx context.Context) (*repository.TaskStats, error) {
	stats, err := s.tasks.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing task stats: %w", err)
	}
	return stats, nil
}
