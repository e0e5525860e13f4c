// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/notes-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-manager/internal/lib/password"
	"github.com/magabrotheeeer/notes-manager/internal/lib/sl"
	"github.com/magabrotheeeer/notes-manager/internal/models"
	"github.com/magabrotheeeer/notes-manager/internal/storage/repository"
)

// ErrUserExists возвращается при попытке зарегистрировать уже занятый email.
var ErrUserExists = errors.New("user already exists")

// ErrInvalidCredentials возвращается при несовпадении пароля.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID или ErrUserNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// AuthService отвечает за регистрацию, авторизацию и выдачу JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	cache    Cache
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, cache Cache, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		cache:    cache,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и выдает токен.
//
// Повторная регистрация занятого email завершается ErrUserExists,
// вторая запись при этом не создается.
func (s *AuthService) Register(ctx context.Context, fullName, email, rawPassword string) (*models.User, string, error) {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashed,
		CreatedOn:    time.Now().UTC(),
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email, user.FullName)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("registered new user", slog.String("uid", uid))
	return &user, token, nil
}

// Login проверяет пароль пользователя и генерирует свежий JWT.
//
// Отсутствующий email даёт repository.ErrUserNotFound, неверный
// пароль — ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.UID, user.Email, user.FullName)
}

// GetUser возвращает пользователя по UID, используя кеш или репозиторий.
func (s *AuthService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	var result *models.User
	cacheKey := fmt.Sprintf("user:%s", userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read user from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}
