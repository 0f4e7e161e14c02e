// Package check реализует HTTP-обработчик проверки сессии.
package check

import (
	"context"
	"net/http"

	"github.com/felix-musau/myai/internal/http/middlewarectx"
	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/models"
)

// Service проверяет токен. Никогда не возвращает ошибку.
type Service interface {
	CheckAuth(ctx context.Context, token string) models.AuthStatus
}

type Handler struct {
	service    Service
	cookieName string
}

func New(service Service, cookieName string) *Handler {
	return &Handler{service: service, cookieName: cookieName}
}

// ServeHTTP godoc
// @Summary Проверка сессии
// @Tags Auth
// @Produce json
// @Success 200 {object} models.AuthStatus
// @Router /auth/check [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.service.CheckAuth(r.Context(), middlewarectx.TokenFromRequest(r, h.cookieName))
	response.JSON(w, r, http.StatusOK, status)
}
