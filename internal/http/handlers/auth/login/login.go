// Package login реализует HTTP-обработчик входа по имени пользователя и паролю.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/felix-musau/myai/internal/http/cookie"
	"github.com/felix-musau/myai/internal/http/handlers/auth/autherr"
	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
)

// Request учетные данные пользователя.
type Request struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw1"`
}

// Response тело успешного ответа. Токен дублирует cookie для клиентов,
// которые передают его в заголовке Authorization.
type Response struct {
	Message  string `json:"message" example:"Logged in"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Service описывает бизнес-логику входа.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
}

// EventRecorder учитывает события аутентификации в метриках.
type EventRecorder interface {
	AuthEvent(event string, ok bool)
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log     *slog.Logger
	service Service
	session cookie.Session
	events  EventRecorder
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, session cookie.Session, events EventRecorder) *Handler {
	return &Handler{log: log, service: service, session: session, events: events}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет пароль, выставляет cookie token и возвращает токен.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	res, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.events.AuthEvent("login", false)
		autherr.Write(w, r, log, err)
		return
	}
	h.events.AuthEvent("login", true)

	h.session.Set(w, res.Token, res.ExpiresAt)
	log.Info("login success", slog.String("username", res.Username))
	response.JSON(w, r, http.StatusOK, Response{
		Message:  "Logged in",
		Username: res.Username,
		Email:    res.Email,
		Token:    res.Token,
	})
}
