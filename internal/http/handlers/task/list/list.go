package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-manager/internal/http/response"
	"github.com/magabrotheeeer/notes-manager/internal/lib/sl"
	"github.com/magabrotheeeer/notes-manager/internal/models"
)

// Response — оболочка ответа со списком задач, закреплённые — первыми.
type Response struct {
	response.Response
	Tasks []*models.Task `json:"tasks"`
}

type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Task, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список задач пользователя
// @Description Возвращает все задачи текущего пользователя, закреплённые — первыми.
// @Tags Tasks
// @Produce  json
// @Success 200 {object} Response "Список задач"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Ошибка сервера"
// @Router /get-all-tasks [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	tasks, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	log.Info("list tasks", slog.Int("count", len(tasks)))
	render.JSON(w, r, Response{
		Response: response.OK("All task retrieved successfully"),
		Tasks:    tasks,
	})
}
