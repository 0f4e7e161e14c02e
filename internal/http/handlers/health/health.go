// Package health содержит проверки живости и готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
)

// Response тело ответа проверки.
type Response struct {
	OK bool `json:"ok"`
}

// Pinger зависимость, доступность которой проверяет Ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, Response{OK: true})
}

// ReadyHandler отвечает 200, только если все зависимости доступны.
type ReadyHandler struct {
	log     *slog.Logger
	timeout time.Duration
	deps    map[string]Pinger
}

// NewReady создает проверку готовности для именованных зависимостей.
func NewReady(log *slog.Logger, timeout time.Duration, deps map[string]Pinger) *ReadyHandler {
	return &ReadyHandler{log: log, timeout: timeout, deps: deps}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Description Проверяет PostgreSQL и Redis.
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /ready [get]
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health.ready"

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.log.Error("dependency is not ready", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			response.JSON(w, r, http.StatusServiceUnavailable, Response{OK: false})
			return
		}
	}
	response.JSON(w, r, http.StatusOK, Response{OK: true})
}
