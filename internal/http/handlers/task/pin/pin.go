package pin

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
	"github.com/magabrotheeeer/notes-manager/internal/storage/repository"
)

// Request — новое значение признака закреплённости.
type Request struct {
	IsPinned bool `json:"isPinned"`
}

// Response — оболочка ответа с обновлённой задачей.
type Response struct {
	response.Response
	Task *models.Task `json:"task,omitempty"`
}

type Service interface {
	SetPinned(ctx context.Context, taskID, userUID string, isPinned bool) (*models.Task, error)
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
	const op = "handlers.task.pin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
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

	task, err := h.service.SetPinned(r.Context(), taskID, userUID, req.IsPinned)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			log.Error("task not found", slog.String("task_id", taskID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Task not found"))
			return
		}
		log.Error("failed to update pinned status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("success to update pinned status", slog.String("id", task.ID), slog.Bool("is_pinned", task.IsPinned))
	render.JSON(w, r, Response{
		Response: response.OK("Task pinned status updated successfully"),
		Task:     task,
	})
}
