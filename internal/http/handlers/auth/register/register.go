// Package register реализует HTTP-обработчик регистрации пользователя.
//
// После успешной регистрации пользователь сразу получает сессию:
// токен записывается в http-only cookie.
package register

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

// Request тело запроса регистрации.
type Request struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"a@x.io"`
	Password string `json:"password" example:"pw1"`
}

// Response тело успешного ответа.
type Response struct {
	Message  string `json:"message" example:"Registered successfully"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.AuthResult, error)
}

// EventRecorder учитывает события аутентификации в метриках.
type EventRecorder interface {
	AuthEvent(event string, ok bool)
}

// Handler обрабатывает HTTP-запросы регистрации.
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
// @Summary Регистрация пользователя
// @Description Создает пользователя и открывает сессию (cookie token).
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные пользователя"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля или пользователь существует"
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	res, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.events.AuthEvent("register", false)
		autherr.Write(w, r, log, err)
		return
	}
	h.events.AuthEvent("register", true)

	h.session.Set(w, res.Token, res.ExpiresAt)
	log.Info("user registered", slog.String("username", res.Username))
	response.JSON(w, r, http.StatusOK, Response{
		Message:  "Registered successfully",
		Username: res.Username,
		Email:    res.Email,
	})
}
