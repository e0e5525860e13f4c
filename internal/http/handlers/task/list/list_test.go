package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/notes-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-manager/internal/models"
)

// ServiceMock реализует интерфейс list.Service
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, userUID string) ([]*models.Task, error) {
	args := m.Called(ctx, userUID)
	var tasks []*models.Task
	if args.Get(0) != nil {
		tasks = args.Get(0).([]*models.Task)
	}
	return tasks, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:    "успешное получение списка задач",
			userUID: "uid-1",
			setupMock: func(m *ServiceMock) {
				m.On("List", mock.Anything, "uid-1").
					Return([]*models.Task{
						{ID: "task-2", Title: "Pinned", IsPinned: true, UserUID: "uid-1"},
						{ID: "task-1", Title: "Regular", UserUID: "uid-1"},
					}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"message":"All task retrieved successfully"`,
		},
		{
			name:           "отсутствует авторизация",
			userUID:        "",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `"message":"unauthorized"`,
		},
		{
			name:    "ошибка сервиса",
			userUID: "uid-1",
			setupMock: func(m *ServiceMock) {
				m.On("List", mock.Anything, "uid-1").
					Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `"message":"Internal Server Error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setupMock(serviceMock)

			handler := New(logger, serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/get-all-tasks", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)

			serviceMock.AssertExpectations(t)
		})
	}
}

func TestListHandler_EmptyListIsArray(t *testing.T) {
	serviceMock := new(ServiceMock)
	serviceMock.On("List", mock.Anything, "uid-1").Return(nil, nil).Once()

	handler := New(newNoopLogger(), serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/get-all-tasks", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var got map[string]any
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	tasks, ok := got["tasks"].([]any)
	assert.True(t, ok)
	assert.Empty(t, tasks)
}
