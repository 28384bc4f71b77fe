package service_test

import (
	"testing"
	"time"

	"taskblog/internal/auth"
	"taskblog/internal/models"
	"taskblog/internal/repository"
	"taskblog/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var authTestCfg = auth.Config{Secret: "unit-test-secret", ExpiresIn: time.Hour}

func TestAuthService_Register(t *testing.T) {
	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, authTestCfg)

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, repository.ErrNotFound)
	repo.On("GetByUsername", mock.Anything, "alice").Return(nil, repository.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, token, err := svc.Register(t.Context(), "alice", "alice@example.com", "Password1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.True(t, user.IsActive)
	// Stored hash must verify against the original password.
	assert.True(t, auth.CheckPassword("Password1", user.PasswordHash))

	claims, err := auth.ParseToken(authTestCfg, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)

	repo.AssertExpectations(t)
}

func TestAuthService_Register_EmailConflictWins(t *testing.T) {
	// When both email and username are taken, the email conflict is the
	// one reported.
	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, authTestCfg)

	existing := models.NewUser("alice", "alice@example.com", "hash")
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(existing, nil)

	_, _, err := svc.Register(t.Context(), "alice", "alice@example.com", "Password1")
	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, service.CodeConflict, busErr.Code)
	assert.Equal(t, "Email already registered", busErr.Message)

	repo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, authTestCfg)

	existing := models.NewUser("alice", "other@example.com", "hash")
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, repository.ErrNotFound)
	repo.On("GetByUsername", mock.Anything, "alice").Return(existing, nil)

	_, _, err := svc.Register(t.Context(), "alice", "alice@example.com", "Password1")
	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, "Username already taken", busErr.Message)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("Password1")
	require.NoError(t, err)
	existing := models.NewUser("alice", "alice@example.com", hash)

	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, authTestCfg)
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(existing, nil)

	user, token, err := svc.Login(t.Context(), "alice@example.com", "Password1")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, authTestCfg)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	_, _, err := svc.Login(t.Context(), "nobody@example.com", "Password1")
	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, service.CodeUnauthorized, busErr.Code)
	assert.Equal(t, "Invalid email or password", busErr.Message)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("Password1")
	require.NoError(t, err)
	existing := models.NewUser("alice", "alice@example.com", hash)

	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, authTestCfg)
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(existing, nil)

	_, _, err = svc.Login(t.Context(), "alice@example.com", "WrongPass1")
	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	// Same message as for an unknown email so callers cannot probe which
	// part was wrong.
	assert.Equal(t, "Invalid email or password", busErr.Message)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	hash, err := auth.HashPassword("Password1")
	require.NoError(t, err)
	existing := models.NewUser("alice", "alice@example.com", hash)
	existing.IsActive = false

	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, authTestCfg)
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(existing, nil)

	_, _, err = svc.Login(t.Context(), "alice@example.com", "Password1")
	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, "Account is inactive", busErr.Message)
}

func TestAuthService_ChangePassword(t *testing.T) {
	hash, err := auth.HashPassword("OldPass1")
	require.NoError(t, err)
	user := models.NewUser("alice", "alice@example.com", hash)

	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, authTestCfg)
	repo.On("Update", mock.Anything, user).Return(nil)

	require.NoError(t, svc.ChangePassword(t.Context(), user, "OldPass1", "NewPass1"))
	assert.True(t, auth.CheckPassword("NewPass1", user.PasswordHash))
	repo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	hash, err := auth.HashPassword("OldPass1")
	require.NoError(t, err)
	user := models.NewUser("alice", "alice@example.com", hash)

	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, authTestCfg)

	err = svc.ChangePassword(t.Context(), user, "NotTheOne1", "NewPass1")
	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, "Current password is incorrect", busErr.Message)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
