// Package forgot реализует HTTP-обработчик запроса ссылки на сброс пароля.
package forgot

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
	Email string `json:"email" example:"a@x.io"`
}

// Service отправляет письмо со ссылкой сброса.
type Service interface {
	ForgotPassword(ctx context.Context, email string) error
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Запрос сброса пароля
// @Description Отправляет на email ссылку для сброса пароля.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Email пользователя"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "Email required"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Failure 500 {object} response.ErrorResponse "Failed to send email"
// @Router /auth/forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgot"

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

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		autherr.Write(w, r, log, err)
		return
	}

	log.Info("password reset link sent")
	response.JSON(w, r, http.StatusOK, response.Message("Password reset link sent"))
}
