// Package services содержит бизнес-логику для управления задачами-заметками,
// включая кеширование списка задач пользователя.
//
// Все операции выполняются строго в пределах владельца: задача чужого
// пользователя неотличима от отсутствующей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/notes-manager/internal/lib/sl"
	"github.com/magabrotheeeer/notes-manager/internal/models"
)

// ErrNoChanges возвращается при обновлении без изменяемых полей.
// IsPinned сам по себе изменением не считается, для него есть SetPinned.
var ErrNoChanges = errors.New("no change provided")

// TaskRepository определяет методы для работы с задачами в хранилище.
type TaskRepository interface {
	// CreateTask добавляет новую задачу и возвращает её ID.
	CreateTask(ctx context.Context, task models.Task) (string, error)
	// GetTask возвращает задачу по ID в пределах владельца.
	GetTask(ctx context.Context, taskID, userUID string) (*models.Task, error)
	// UpdateTask перезаписывает изменяемые поля задачи.
	UpdateTask(ctx context.Context, task models.Task) error
	// ListTasks возвращает все задачи пользователя, закреплённые — первыми.
	ListTasks(ctx context.Context, userUID string) ([]*models.Task, error)
	// DeleteTask удаляет задачу и возвращает количество удалённых строк.
	DeleteTask(ctx context.Context, taskID, userUID string) (int64, error)
	// SearchTasks ищет подстроку в заголовке и содержимом без учёта регистра.
	SearchTasks(ctx context.Context, userUID, query string) ([]*models.Task, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// TaskService реализует бизнес-логику работы с задачами, включая кеширование.
type TaskService struct {
	repo  TaskRepository
	cache Cache
	log   *slog.Logger
}

// NewTaskService создает новый экземпляр TaskService.
func NewTaskService(repo TaskRepository, cache Cache, log *slog.Logger) *TaskService {
	return &TaskService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func listCacheKey(userUID string) string {
	return fmt.Sprintf("tasks:%s", userUID)
}

// Create создает новую задачу для пользователя и возвращает её.
func (s *TaskService) Create(ctx context.Context, userUID, title, content string, tags []string) (*models.Task, error) {
	if tags == nil {
		tags = []string{}
	}
	task := models.Task{
		Title:     title,
		Content:   content,
		Tags:      tags,
		IsPinned:  false,
		UserUID:   userUID,
		CreatedOn: time.Now().UTC(),
	}

	id, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	task.ID = id

	s.log.Info("created new task", slog.String("id", id))
	s.invalidateList(userUID)
	return &task, nil
}

// Update применяет частичное обновление: переносит в задачу только
// переданные поля. Без изменяемых полей возвращает ErrNoChanges.
func (s *TaskService) Update(ctx context.Context, taskID, userUID string, changes models.TaskChanges) (*models.Task, error) {
	if !changes.HasChanges() {
		return nil, ErrNoChanges
	}

	task, err := s.repo.GetTask(ctx, taskID, userUID)
	if err != nil {
		return nil, err
	}

	if changes.Title != nil {
		task.Title = *changes.Title
	}
	if changes.Content != nil {
		task.Content = *changes.Content
	}
	if changes.Tags != nil {
		task.Tags = *changes.Tags
	}
	if changes.IsPinned != nil {
		task.IsPinned = *changes.IsPinned
	}

	if err := s.repo.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}

	s.log.Info("updated task", slog.String("id", taskID))
	s.invalidateList(userUID)
	return task, nil
}

// SetPinned безусловно перезаписывает признак закреплённости задачи.
func (s *TaskService) SetPinned(ctx context.Context, taskID, userUID string, isPinned bool) (*models.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID, userUID)
	if err != nil {
		return nil, err
	}

	task.IsPinned = isPinned
	if err := s.repo.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}

	s.invalidateList(userUID)
	return task, nil
}

// List возвращает все задачи пользователя, используя кеш или репозиторий.
// Закреплённые задачи идут первыми.
func (s *TaskService) List(ctx context.Context, userUID string) ([]*models.Task, error) {
	var result []*models.Task
	cacheKey := listCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read tasks from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListTasks(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache tasks", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// Delete удаляет задачу пользователя. Перед удалением выполняется
// scoped-чтение, чтобы отсутствие и чужое владение давали один результат.
func (s *TaskService) Delete(ctx context.Context, taskID, userUID string) error {
	if _, err := s.repo.GetTask(ctx, taskID, userUID); err != nil {
		return err
	}
	if _, err := s.repo.DeleteTask(ctx, taskID, userUID); err != nil {
		return err
	}

	s.log.Info("deleted task", slog.String("id", taskID))
	s.invalidateList(userUID)
	return nil
}

// Search возвращает задачи пользователя, содержащие подстроку query
// в заголовке или содержимом без учёта регистра.
func (s *TaskService) Search(ctx context.Context, userUID, query string) ([]*models.Task, error) {
	return s.repo.SearchTasks(ctx, userUID, query)
}

func (s *TaskService) invalidateList(userUID string) {
	cacheKey := listCacheKey(userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate tasks cache", slog.String("key", cacheKey), sl.Err(err))
	}
}
