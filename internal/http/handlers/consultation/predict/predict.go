// Package predict реализует HTTP-обработчик предсказания диагноза по симптомам.
// Доступен только аутентифицированным пользователям.
package predict

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/felix-musau/myai/internal/http/middlewarectx"
	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
	"github.com/felix-musau/myai/internal/services/consultation"
)

// Request симптомы: название -> 0/1.
type Request struct {
	Symptoms map[string]int `json:"symptoms"`
}

// Response предсказанный диагноз.
type Response struct {
	Disease string `json:"disease" example:"Migraine"`
}

type Service interface {
	Predict(ctx context.Context, user models.SessionUser, symptoms map[string]int) (string, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Предсказание по симптомам
// @Description Запрашивает ML-сервис и сохраняет консультацию в историю пользователя.
// @Tags Consultations
// @Accept json
// @Produce json
// @Param request body Request true "Симптомы"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Symptoms required"
// @Failure 401 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "ML service unavailable"
// @Security CookieAuth
// @Router /predict [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.consultation.predict"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	disease, err := h.service.Predict(r.Context(), user, req.Symptoms)
	switch {
	case err == nil:
	case errors.Is(err, consultation.ErrNoSymptoms):
		response.JSON(w, r, http.StatusBadRequest, response.Error("Symptoms required"))
		return
	case errors.Is(err, consultation.ErrPredictorUnavailable):
		log.Error("prediction failed", sl.Err(err))
		response.JSON(w, r, http.StatusServiceUnavailable, response.Error("ML service unavailable"))
		return
	default:
		log.Error("prediction failed", sl.Err(err))
		response.Internal(w, r)
		return
	}

	log.Info("prediction served", slog.String("username", user.Username))
	response.JSON(w, r, http.StatusOK, Response{Disease: disease})
}
