// Package list реализует HTTP-обработчик списка отзывов со сводной статистикой.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
)

// Response тело ответа.
type Response struct {
	Success      bool                      `json:"success"`
	Testimonials []models.Testimonial      `json:"testimonials"`
	Summary      models.TestimonialSummary `json:"summary"`
}

type Service interface {
	List(ctx context.Context) (*models.TestimonialList, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список отзывов
// @Description Возвращает все отзывы, среднюю оценку и распределение оценок.
// @Tags Testimonials
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} response.ErrorResponse
// @Router /testimonials [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.testimonial.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list testimonials", sl.Err(err))
		response.Internal(w, r)
		return
	}

	items := res.Testimonials
	if items == nil {
		items = []models.Testimonial{}
	}
	response.JSON(w, r, http.StatusOK, Response{
		Success:      true,
		Testimonials: items,
		Summary:      res.Summary,
	})
}
