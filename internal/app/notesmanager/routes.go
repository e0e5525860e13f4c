// Package notesmanager предоставляет маршруты для основного приложения.
package notesmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/auth/getuser"
	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/health"
	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/task/create"
	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/task/list"
	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/task/pin"
	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/task/remove"
	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/task/search"
	"github.com/magabrotheeeer/notes-manager/internal/http/handlers/task/update"
	"github.com/magabrotheeeer/notes-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-manager/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/notes-manager/internal/services/auth"
	taskservice "github.com/magabrotheeeer/notes-manager/internal/services/task"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, authService *authservice.AuthService, taskService *taskservice.TaskService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Get("/", health.New(logger).ServeHTTP)
	r.Post("/create-acc", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
		r.Get("/get-user", getuser.New(logger, authService).ServeHTTP)
		r.Post("/add-task", create.New(logger, taskService).ServeHTTP)
		r.Put("/edit-task/{taskId}", update.New(logger, taskService).ServeHTTP)
		r.Put("/update-task-pinned/{taskId}", pin.New(logger, taskService).ServeHTTP)
		r.Get("/get-all-tasks", list.New(logger, taskService).ServeHTTP)
		r.Delete("/delete-task/{taskId}", remove.New(logger, taskService).ServeHTTP)
		r.Get("/search-task", search.New(logger, taskService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
