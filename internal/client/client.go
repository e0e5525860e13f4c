// Package client предоставляет HTTP-клиент для API менеджера заметок.
//
// Клиент оборачивает все конечные точки сервера и подставляет Bearer-токен,
// полученный при регистрации или входе. Бизнес-правил он не содержит:
// ответы сервера, включая ошибки, передаются вызывающему как есть.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/magabrotheeeer/notes-manager/internal/models"
)

// Client — клиент REST API менеджера заметок.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New создаёт новый клиент API. Токен изначально пуст, он устанавливается
// автоматически после Register или Login.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken задаёт Bearer-токен вручную, например восстановленный из хранилища.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError возвращается, когда сервер ответил envelope с error=true.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Error       bool           `json:"error"`
	Message     string         `json:"message"`
	User        *models.User   `json:"user,omitempty"`
	Email       string         `json:"email,omitempty"`
	AccessToken string         `json:"accessToken,omitempty"`
	Task        *models.Task   `json:"task,omitempty"`
	Tasks       []*models.Task `json:"tasks,omitempty"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if env.Error {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

// Register создаёт новую учётную запись и запоминает выданный токен.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	body := map[string]string{
		"fullName": fullName,
		"email":    email,
		"password": password,
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/create-acc", body)
	if err != nil {
		return nil, err
	}
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	c.token = env.AccessToken
	return env.User, nil
}

// Login выполняет вход и запоминает выданный токен.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/login", body)
	if err != nil {
		return err
	}
	env, err := c.do(req)
	if err != nil {
		return err
	}
	c.token = env.AccessToken
	return nil
}

// GetUser возвращает учётную запись владельца токена.
func (c *Client) GetUser(ctx context.Context) (*models.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/get-user", nil)
	if err != nil {
		return nil, err
	}
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// AddTask создаёт новую задачу.
func (c *Client) AddTask(ctx context.Context, title, content string, tags []string) (*models.Task, error) {
	body := map[string]any{
		"title":   title,
		"content": content,
		"tags":    tags,
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/add-task", body)
	if err != nil {
		return nil, err
	}
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.Task, nil
}

// EditTask применяет частичное обновление задачи.
func (c *Client) EditTask(ctx context.Context, taskID string, changes models.TaskChanges) (*models.Task, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/edit-task/"+taskID, changes)
	if err != nil {
		return nil, err
	}
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.Task, nil
}

// UpdateTaskPinned переключает признак закреплённости задачи.
func (c *Client) UpdateTaskPinned(ctx context.Context, taskID string, isPinned bool) (*models.Task, error) {
	body := map[string]bool{"isPinned": isPinned}
	req, err := c.newRequest(ctx, http.MethodPut, "/update-task-pinned/"+taskID, body)
	if err != nil {
		return nil, err
	}
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.Task, nil
}

// GetAllTasks возвращает все задачи пользователя, закреплённые — первыми.
func (c *Client) GetAllTasks(ctx context.Context) ([]*models.Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/get-all-tasks", nil)
	if err != nil {
		return nil, err
	}
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.Tasks, nil
}

// DeleteTask удаляет задачу.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/delete-task/"+taskID, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// SearchTasks ищет задачи по подстроке в заголовке или содержимом.
func (c *Client) SearchTasks(ctx context.Context, query string) ([]*models.Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/search-task?query="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.Tasks, nil
}
