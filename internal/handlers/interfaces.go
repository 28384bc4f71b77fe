package handlers

import (
	"context"

	"taskblog/internal/models"
	"taskblog/internal/repository"
	"taskblog/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ChangePassword(ctx context.Context, user *models.User, currentPassword, newPassword string) error
}

type PostService interface {
	ListPosts(ctx context.Context, filter repository.PostFilter) ([]*models.Post, int, error)
	GetPost(ctx context.Context, idOrSlug string) (*models.Post, error)
	CreatePost(ctx context.Context, author *models.User, in service.CreatePostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, user *models.User, id string, opts ...service.PostOption) (*models.Post, error)
	DeletePost(ctx context.Context, user *models.User, id string) error
	LikePost(ctx context.Context, user *models.User, id string) (int, bool, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, filter repository.TaskFilter) ([]*models.Task, int, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	CreateTask(ctx context.Context, in service.CreateTaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, opts ...service.TaskOption) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	TaskStats(ctx context.Context) (*repository.TaskStats, error)
}
