package getuser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-manager/internal/http/response"
	"github.com/magabrotheeeer/notes-manager/internal/lib/sl"
	"github.com/magabrotheeeer/notes-manager/internal/models"
	"github.com/magabrotheeeer/notes-manager/internal/storage/repository"
)

// Response — оболочка ответа с записью пользователя.
type Response struct {
	response.Response
	User *models.User `json:"user,omitempty"`
}

type Service interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
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
	const op = "handlers.auth.getuser"

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

	user, err := h.service.GetUser(r.Context(), userUID)
	if err != nil {
		// Токен мог пережить запись пользователя: сессия недействительна.
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user from token no longer exists", slog.String("uid", userUID))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	render.JSON(w, r, Response{
		Response: response.OK(""),
		User:     user,
	})
}
