// Package history реализует HTTP-обработчик истории консультаций пользователя.
package history

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/felix-musau/myai/internal/http/middlewarectx"
	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
)

type Service interface {
	History(ctx context.Context, userID int64, limit, offset int) ([]models.Consultation, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary История консультаций
// @Description Консультации текущего пользователя, новые первыми.
// @Tags Consultations
// @Produce json
// @Param limit query int false "Размер страницы (по умолчанию 50, максимум 200)"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.Consultation
// @Failure 401 {object} response.ErrorResponse
// @Security CookieAuth
// @Router /history [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.consultation.history"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		response.JSON(w, r, http.StatusUnauthorized, response.Error("No token"))
		return
	}

	// некорректные значения заменяются значениями по умолчанию
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.service.History(r.Context(), user.ID, limit, offset)
	if err != nil {
		log.Error("failed to load history", sl.Err(err))
		response.Internal(w, r)
		return
	}
	if items == nil {
		items = []models.Consultation{}
	}

	log.Debug("history loaded", slog.Int("count", len(items)))
	response.JSON(w, r, http.StatusOK, items)
}
