package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/notes-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-manager/internal/lib/password"
	"github.com/magabrotheeeer/notes-manager/internal/models"
	"github.com/magabrotheeeer/notes-manager/internal/storage/repository"
)

// RepoMock реализует интерфейс UserRepository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

// CacheMock реализует интерфейс Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(repo *RepoMock, cache *CacheMock) *AuthService {
	maker := jwt.NewMaker("test-secret", time.Hour)
	return NewAuthService(repo, maker, cache, newNoopLogger())
}

func TestRegister_Success(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := newTestService(repo, cache)

	repo.On("GetUserByEmail", mock.Anything, "ivan@example.com").
		Return(nil, repository.ErrUserNotFound).Once()
	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("models.User")).
		Return("uid-1", nil).Once()

	user, token, err := service.Register(context.Background(), "Ivan Petrov", "ivan@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "ivan@example.com", user.Email)
	assert.NotEmpty(t, token)
	// Пароль сохраняется только в виде bcrypt-хэша
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, password.CompareHash(user.PasswordHash, "password123"))

	repo.AssertExpectations(t)
}

func TestRegister_UserAlreadyExists(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := newTestService(repo, cache)

	repo.On("GetUserByEmail", mock.Anything, "ivan@example.com").
		Return(&models.User{UID: "uid-1", Email: "ivan@example.com"}, nil).Once()

	user, token, err := service.Register(context.Background(), "Ivan Petrov", "ivan@example.com", "password123")

	assert.ErrorIs(t, err, ErrUserExists)
	assert.Nil(t, user)
	assert.Empty(t, token)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegister_LookupError(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := newTestService(repo, cache)

	repo.On("GetUserByEmail", mock.Anything, "ivan@example.com").
		Return(nil, errors.New("db down")).Once()

	_, _, err := service.Register(context.Background(), "Ivan Petrov", "ivan@example.com", "password123")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserExists)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := newTestService(repo, cache)

	hash, err := password.GetHash("password123")
	assert.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "ivan@example.com").
		Return(&models.User{UID: "uid-1", Email: "ivan@example.com", PasswordHash: hash}, nil).Once()

	token, err := service.Login(context.Background(), "ivan@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	repo.AssertExpectations(t)
}

func TestLogin_UserNotFound(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := newTestService(repo, cache)

	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound).Once()

	token, err := service.Login(context.Background(), "ghost@example.com", "password123")

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Empty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := newTestService(repo, cache)

	hash, err := password.GetHash("password123")
	assert.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "ivan@example.com").
		Return(&models.User{UID: "uid-1", Email: "ivan@example.com", PasswordHash: hash}, nil).Once()

	token, err := service.Login(context.Background(), "ivan@example.com", "wrongpass")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestGetUser_CacheMiss(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := newTestService(repo, cache)

	cache.On("Get", "user:uid-1", mock.Anything).Return(false, nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").
		Return(&models.User{UID: "uid-1", Email: "ivan@example.com"}, nil).Once()
	cache.On("Set", "user:uid-1", mock.Anything, time.Hour).Return(nil).Once()

	user, err := service.GetUser(context.Background(), "uid-1")

	assert.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGetUser_NotFound(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	service := newTestService(repo, cache)

	cache.On("Get", "user:uid-gone", mock.Anything).Return(false, nil).Once()
	repo.On("GetUser", mock.Anything, "uid-gone").
		Return(nil, repository.ErrUserNotFound).Once()

	user, err := service.GetUser(context.Background(), "uid-gone")

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Nil(t, user)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}
