package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskblog/internal/models"
	"taskblog/internal/repository"
)

type PostStorage struct {
	mtx   sync.RWMutex
	posts map[string]*models.Post
}

func NewPostStorage() *PostStorage {
	return &PostStorage{posts: make(map[string]*models.Post)}
}

func (s *PostStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *PostStorage) Create(ctx context.Context, post *models.Post) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, p := range s.posts {
		if p.Slug == post.Slug {
			return repository.ErrDuplicate
		}
	}
	cp := clonePost(post)
	s.posts[post.ID] = cp
	return nil
}

func (s *PostStorage) GetByID(ctx context.Context, id string) (*models.Post, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(p), nil
}

func (s *PostStorage) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, p := range s.posts {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *PostStorage) List(ctx context.Context, filter repository.PostFilter) ([]*models.Post, int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	matched := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Author != "" && p.Author != filter.Author {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	page := paginate(matched, filter.Page, filter.Limit)
	out := make([]*models.Post, len(page))
	for i, p := range page {
		out[i] = clonePost(p)
	}
	return out, total, nil
}

func (s *PostStorage) Update(ctx context.Context, post *models.Post) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	post.UpdatedAt = &now
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *PostStorage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	cp.Likes = append([]string(nil), p.Likes...)
	return &cp
}

func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
