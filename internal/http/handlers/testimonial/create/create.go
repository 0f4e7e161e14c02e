// Package create реализует HTTP-обработчик добавления отзыва.
//
// Оценка принимается и числом, и строкой с числом.
package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/services/testimonial"
)

// Rating оценка из JSON: 5, "5" или пусто.
type Rating int

// UnmarshalJSON принимает число или строку. Нечисловая строка дает 0.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			*r = 0
			return nil
		}
		*r = Rating(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Rating(int(f))
	return nil
}

// Request тело запроса.
type Request struct {
	Name   string `json:"name" example:"Jane D."`
	Rating Rating `json:"rating" swaggertype:"integer" example:"5"`
	Text   string `json:"text" example:"Very helpful"`
}

// Response тело ответа.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Service interface {
	Create(ctx context.Context, name string, rating int, text string) error
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Добавить отзыв
// @Description Отзыв сохраняется, но в ответе не возвращается.
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param request body Request true "Отзыв"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 500 {object} response.ErrorResponse
// @Router /testimonials [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.testimonial.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	err := h.service.Create(r.Context(), req.Name, int(req.Rating), req.Text)
	switch {
	case err == nil:
	case errors.Is(err, testimonial.ErrValidation), errors.Is(err, testimonial.ErrInvalidRating):
		log.Info("testimonial rejected", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	default:
		log.Error("failed to create testimonial", sl.Err(err))
		response.Internal(w, r)
		return
	}

	log.Info("testimonial added")
	response.JSON(w, r, http.StatusOK, Response{Success: true})
}
