package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-manager/internal/http/response"
	"github.com/magabrotheeeer/notes-manager/internal/lib/sl"
	"github.com/magabrotheeeer/notes-manager/internal/storage/repository"
)

type Service interface {
	Delete(ctx context.Context, taskID, userUID string) error
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
	const op = "handlers.task.remove"

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

	taskID := chi.URLParam(r, "taskId")

	if err := h.service.Delete(r.Context(), taskID, userUID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			log.Error("task not found", slog.String("task_id", taskID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Task not found"))
			return
		}
		log.Error("failed to delete task", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("success to delete task", slog.String("task_id", taskID))
	render.JSON(w, r, response.OK("Task deleted successfully"))
}
