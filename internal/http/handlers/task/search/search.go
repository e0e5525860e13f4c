package search

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

// Response — оболочка ответа с найденными задачами.
type Response struct {
	response.Response
	Tasks []*models.Task `json:"tasks"`
}

type Service interface {
	Search(ctx context.Context, userUID, query string) ([]*models.Task, error)
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.search"

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

	query := r.URL.Query().Get("query")
	if query == "" {
		log.Error("empty search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Search query is required"))
		return
	}

	tasks, err := h.service.Search(r.Context(), userUID, query)
	if err != nil {
		log.Error("failed to search tasks", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	log.Info("search tasks", slog.String("query", query), slog.Int("count", len(tasks)))
	render.JSON(w, r, Response{
		Response: response.OK("Task matching the search query retrieved successfully"),
		Tasks:    tasks,
	})
}
