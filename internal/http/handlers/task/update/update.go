package update

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
	"github.com/magabrotheeeer/notes-manager/internal/models"
	taskservice "github.com/magabrotheeeer/notes-manager/internal/services/task"
	"github.com/magabrotheeeer/notes-manager/internal/storage/repository"
)

// Response — оболочка ответа с обновлённой задачей.
type Response struct {
	response.Response
	Task *models.Task `json:"task,omitempty"`
}

type Service interface {
	Update(ctx context.Context, taskID, userUID string, changes models.TaskChanges) (*models.Task, error)
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
	const op = "handlers.task.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var changes models.TaskChanges
	if err := render.DecodeJSON(r.Body, &changes); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	taskID := chi.URLParam(r, "taskId")

	task, err := h.service.Update(r.Context(), taskID, userUID, changes)
	if err != nil {
		switch {
		case errors.Is(err, taskservice.ErrNoChanges):
			log.Error("no change provided", slog.String("task_id", taskID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("No change provided"))
		case errors.Is(err, repository.ErrTaskNotFound):
			log.Error("task not found", slog.String("task_id", taskID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Task not found"))
		default:
			log.Error("failed to update task", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Internal Server Error"))
		}
		return
	}

	log.Info("success to update task", slog.String("id", task.ID))
	render.JSON(w, r, Response{
		Response: response.OK("Task updated successfully"),
		Task:     task,
	})
}
