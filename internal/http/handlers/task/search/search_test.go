package search

import (
	"context"
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

// ServiceMock реализует интерфейс search.Service
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Search(ctx context.Context, userUID, query string) ([]*models.Task, error) {
	args := m.Called(ctx, userUID, query)
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

func TestSearchHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		url            string
		userUID        string
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:    "успешный поиск",
			url:     "/search-task?query=milk",
			userUID: "uid-1",
			setupMock: func(m *ServiceMock) {
				m.On("Search", mock.Anything, "uid-1", "milk").
					Return([]*models.Task{{ID: "task-1", Title: "Buy milk", UserUID: "uid-1"}}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"message":"Task matching the search query retrieved successfully"`,
		},
		{
			name:    "поиск без результатов",
			url:     "/search-task?query=nothing",
			userUID: "uid-1",
			setupMock: func(m *ServiceMock) {
				m.On("Search", mock.Anything, "uid-1", "nothing").
					Return([]*models.Task{}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"tasks":[]`,
		},
		{
			name:           "пустой запрос",
			url:            "/search-task",
			userUID:        "uid-1",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"message":"Search query is required"`,
		},
		{
			name:           "отсутствует авторизация",
			url:            "/search-task?query=milk",
			userUID:        "",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `"message":"unauthorized"`,
		},
		{
			name:    "ошибка сервиса",
			url:     "/search-task?query=milk",
			userUID: "uid-1",
			setupMock: func(m *ServiceMock) {
				m.On("Search", mock.Anything, "uid-1", "milk").
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

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
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
