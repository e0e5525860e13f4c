// Package create реализует HTTP-обработчик для создания новых задач пользователя.
//
// Handler принимает JSON-запрос с данными задачи, валидирует их, извлекает
// идентификатор пользователя из контекста, вызывает бизнес-логику создания
// задачи через сервис и возвращает созданную запись в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-manager/internal/http/response"
	"github.com/magabrotheeeer/notes-manager/internal/lib/sl"
	"github.com/magabrotheeeer/notes-manager/internal/models"
)

// Request — входные данные новой задачи.
type Request struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// Response — оболочка ответа с созданной задачей.
type Response struct {
	response.Response
	Task *models.Task `json:"task,omitempty"`
}

// Service описывает интерфейс бизнес-логики создания задачи.
type Service interface {
	Create(ctx context.Context, userUID, title, content string, tags []string) (*models.Task, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новую задачу
// @Description Создает новую задачу для текущего пользователя. Возвращает созданную запись.
// @Tags Tasks
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные новой задачи"
// @Success 200 {object} Response "Успешное создание задачи"
// @Failure 400 {object} response.Response "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Ошибка сервера при создании задачи"
// @Router /add-task [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	task, err := h.service.Create(r.Context(), userUID, req.Title, req.Content, req.Tags)
	if err != nil {
		log.Error("failed to create task", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("created new task", slog.String("id", task.ID))
	render.JSON(w, r, Response{
		Response: response.OK("Task added successfully"),
		Task:     task,
	})
}
