package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/notes-manager/internal/models"
)

// CreateTask вставляет новую задачу и возвращает её ID.
func (s *Storage) CreateTask(ctx context.Context, task models.Task) (string, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newID := uuid.New().String()
	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO tasks (id, title, content, tags, is_pinned, user_uid, created_on)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.DB.ExecContext(ctx, query,
		newID, task.Title, task.Content, tags, task.IsPinned, task.UserUID, task.CreatedOn); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTask возвращает задачу по ID в пределах владельца. Задача другого
// пользователя неотличима от отсутствующей: в обоих случаях ErrTaskNotFound.
func (s *Storage) GetTask(ctx context.Context, taskID, userUID string) (*models.Task, error) {
	const op = "storage.GetTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, tags, is_pinned, user_uid, created_on
			  FROM tasks
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, taskID, userUID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTaskNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return task, nil
}

// UpdateTask перезаписывает изменяемые поля задачи в пределах владельца.
func (s *Storage) UpdateTask(ctx context.Context, task models.Task) error {
	const op = "storage.UpdateTask"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE tasks
			  SET title = $1, content = $2, tags = $3, is_pinned = $4
			  WHERE id = $5 AND user_uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		task.Title, task.Content, tags, task.IsPinned, task.ID, task.UserUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrTaskNotFound)
	}
	return nil
}

// ListTasks возвращает все задачи пользователя, закреплённые — первыми.
func (s *Storage) ListTasks(ctx context.Context, userUID string) ([]*models.Task, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, tags, is_pinned, user_uid, created_on
			  FROM tasks
			  WHERE user_uid = $1
			  ORDER BY is_pinned DESC, created_on DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := collectTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteTask удаляет задачу по ID в пределах владельца и возвращает
// количество удалённых строк.
func (s *Storage) DeleteTask(ctx context.Context, taskID, userUID string) (int64, error) {
	const op = "storage.DeleteTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM tasks WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, taskID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// SearchTasks возвращает задачи пользователя, в заголовке или содержимом
// которых встречается подстрока query без учёта регистра.
func (s *Storage) SearchTasks(ctx context.Context, userUID, query string) ([]*models.Task, error) {
	const op = "storage.SearchTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	sqlQuery := `SELECT id, title, content, tags, is_pinned, user_uid, created_on
			  FROM tasks
			  WHERE user_uid = $1
			    AND (title ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')
			  ORDER BY is_pinned DESC, created_on DESC`
	rows, err := s.DB.QueryContext(ctx, sqlQuery, userUID, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := collectTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	var tagsRaw []byte
	if err := row.Scan(&t.ID, &t.Title, &t.Content, &tagsRaw, &t.IsPinned, &t.UserUID, &t.CreatedOn); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tagsRaw, &t.Tags); err != nil {
		return nil, err
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

func collectTasks(rows *sql.Rows) ([]*models.Task, error) {
	var result []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
