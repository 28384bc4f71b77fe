// Package repository defines the store contracts the services depend on.
// Implementations live in inmemory (tests, development) and mongostore.
package repository

import (
	"context"
	"errors"

	"taskblog/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// PostFilter narrows a post listing. Zero values mean "no filter".
// Page and Limit are 1-based; callers normalize before passing them in.
type PostFilter struct {
	Category string
	Status   models.PostStatus
	Author   string
	Page     int
	Limit    int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	// List returns one page sorted by creation time descending, plus the
	// total match count for pagination metadata.
	List(ctx context.Context, filter PostFilter) ([]*models.Post, int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

type TaskFilter struct {
	Status   models.TaskStatus
	Priority models.TaskPriority
	Page     int
	Limit    int
	SortBy   string // created_at, due_date, priority, title
	Order    string // asc | desc
}

// TaskStats mirrors GET /api/tasks/stats/overview.
type TaskStats struct {
	ByStatus   map[string]int `json:"byStatus"`
	ByPriority map[string]int `json:"byPriority"`
	Overdue    int            `json:"overdue"`
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*models.Task, int, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*TaskStats, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
