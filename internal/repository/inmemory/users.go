// Package inmemory keeps every document in process memory behind a
// RW-mutex. It backs the unit tests and the "inmemory" repository type.
package inmemory

import (
	"context"
	"sync"
	"time"

	"taskblog/internal/models"
	"taskblog/internal/repository"
)

type UserStorage struct {
	mtx   sync.RWMutex
	users map[string]*models.User
}

func NewUserStorage() *UserStorage {
	return &UserStorage{users: make(map[string]*models.User)}
}

func (s *UserStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *UserStorage) Create(ctx context.Context, user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStorage) Update(ctx context.Context, user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	user.UpdatedAt = &now
	cp := *user
	s.users[user.ID] = &cp
	return nil
}
