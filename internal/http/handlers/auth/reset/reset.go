// Package reset реализует HTTP-обработчик установки нового пароля по токену сброса.
package reset

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/felix-musau/myai/internal/http/handlers/auth/autherr"
	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
)

// Request тело запроса.
type Request struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Service меняет пароль по токену.
type Service interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сброс пароля
// @Description Устанавливает новый пароль. Токен сброса одноразовый.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Токен и новый пароль"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "Invalid or expired token"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Router /auth/reset-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.reset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		autherr.Write(w, r, log, err)
		return
	}

	log.Info("password updated")
	response.JSON(w, r, http.StatusOK, response.Message("Password updated"))
}
