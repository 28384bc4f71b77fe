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

type AuthService struct {
	users repository.UserRepository
	cfg   auth.Config
}

func NewAuthService(users repository.UserRepository, cfg auth.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register creates a user and issues a token. Email conflicts are
// reported before username conflicts.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", NewConflict("Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("checking email: %w", err)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", NewConflict("Username already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("checking username: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := models.NewUser(username, email, hash)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", NewConflict("Email already registered")
		}
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := auth.GenerateToken(s.cfg, user)
	if err != nil {
		return nil, "", fmt.Errorf("signing token: %w", err)
	}

	logger.Info("service: user registered", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", NewUnauthorized("Invalid email or password")
		}
		return nil, "", fmt.Errorf("loading user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", NewUnauthorized("Invalid email or password")
	}

	if !user.IsActive {
		return nil, "", NewUnauthorized("Account is inactive")
	}

	token, err := auth.GenerateToken(s.cfg, user)
	if err != nil {
		return nil, "", fmt.Errorf("signing token: %w", err)
	}

	logger.Info("service: user logged in", zap.String("user_id", user.ID))
	return user, token, nil
}

// ChangePassword verifies the current password before persisting the
// re-hashed new one.
func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, currentPassword, newPassword string) error {
	if !auth.CheckPassword(currentPassword, user.PasswordHash) {
		return NewUnauthorized("Current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	logger.Info("service: password updated", zap.String("user_id", user.ID))
	return nil
}
