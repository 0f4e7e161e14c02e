// Package logout реализует HTTP-обработчик выхода.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/felix-musau/myai/internal/http/cookie"
	"github.com/felix-musau/myai/internal/http/middlewarectx"
	"github.com/felix-musau/myai/internal/http/response"
)

// Service отзывает сессионный токен.
type Service interface {
	Logout(ctx context.Context, token string)
}

type Handler struct {
	log     *slog.Logger
	service Service
	session cookie.Session
}

func New(log *slog.Logger, service Service, session cookie.Session) *Handler {
	return &Handler{log: log, service: service, session: session}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Отзывает текущую сессию и очищает cookie. Всегда успешен.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.service.Logout(r.Context(), middlewarectx.TokenFromRequest(r, h.session.Name))
	h.session.Clear(w)

	log.Debug("session cleared")
	response.JSON(w, r, http.StatusOK, response.Message("Logged out"))
}
