package service

import (
	"context"
	"errors"
	"fmt"

	"taskblog/internal/auth"
	"taskblog/internal/logger"
	"taskblog/internal/models"
	"taskblog/internal/repository"

	"go.uber.org/zap"
)

type PostService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

type CreatePostInput struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	Status   models.PostStatus
}

func (s *PostService) ListPosts(ctx context.Context, filter repository.PostFilter) ([]*models.Post, int, error) {
	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	return posts, total, nil
}

// GetPost resolves by id first, then by slug. A hit increments and
// persists the view count before the post is returned.
func (s *PostService) GetPost(ctx context.Context, idOrSlug string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, idOrSlug)
	if errors.Is(err, repository.ErrNotFound) {
		post, err = s.posts.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Post")
		}
		return nil, fmt.Errorf("loading post: %w", err)
	}

	post.ViewCount++
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("persisting view count: %w", err)
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, author *models.User, in CreatePostInput) (*models.Post, error) {
	post := models.NewPost(in.Title, in.Content, author.ID, in.Category, in.Tags, in.Status)
	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewConflict("A post with this slug already exists")
		}
		return nil, fmt.Errorf("creating post: %w", err)
	}

	logger.Info("service: post created",
		zap.String("post_id", post.ID),
		zap.String("author", author.Username))
	return post, nil
}

type PostOption func(*models.Post)

func WithPostTitle(title string) PostOption {
	return func(p *models.Post) { p.Title = title }
}

func WithPostContent(content string) PostOption {
	return func(p *models.Post) { p.Content = content }
}

func WithPostCategory(category string) PostOption {
	return func(p *models.Post) { p.Category = category }
}

func WithPostTags(tags []string) PostOption {
	return func(p *models.Post) { p.Tags = models.TrimTags(tags) }
}

func WithPostStatus(status models.PostStatus) PostOption {
	return func(p *models.Post) { p.Status = status }
}

// UpdatePost applies only the supplied options. The slug is never
// regenerated, even when the title changes.
func (s *PostService) UpdatePost(ctx context.Context, user *models.User, id string, opts ...PostOption) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Post")
		}
		return nil, fmt.Errorf("loading post: %w", err)
	}

	if !auth.CanModify(user, post.Author) {
		return nil, NewForbidden("You are not authorized to update this post")
	}

	for _, opt := range opts {
		opt(post)
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	logger.Info("service: post updated", zap.String("post_id", post.ID))
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, user *models.User, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound("Post")
		}
		return fmt.Errorf("loading post: %w", err)
	}

	if !auth.CanModify(user, post.Author) {
		return NewForbidden("You are not authorized to delete this post")
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	logger.Info("service: post deleted", zap.String("post_id", id))
	return nil
}

// LikePost toggles the caller's like and returns the new count and
// liked state.
func (s *PostService) LikePost(ctx context.Context, user *models.User, id string) (int, bool, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, false, NewNotFound("Post")
		}
		return 0, false, fmt.Errorf("loading post: %w", err)
	}

	liked := post.ToggleLike(user.ID)
	if err := s.posts.Update(ctx, post); err != nil {
		return 0, false, fmt.Errorf("updating post: %w", err)
	}

	return post.LikeCount(), liked, nil
}
