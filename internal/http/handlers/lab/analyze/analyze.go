// Package analyze реализует HTTP-обработчик анализа результатов лабораторных тестов.
package analyze

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
)

type Service interface {
	Analyze(ctx context.Context, req models.LabRequest) *models.LabReport
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Анализ результатов
// @Description Оценивает значения blood-glucose, lipid-panel или cbc по пороговым правилам.
// @Tags Lab
// @Accept json
// @Produce json
// @Param request body models.LabRequest true "Тип анализа и значения"
// @Success 200 {object} models.LabReport
// @Failure 400 {object} response.ErrorResponse
// @Router /analyze-lab [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lab.analyze"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LabRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	response.JSON(w, r, http.StatusOK, h.service.Analyze(r.Context(), req))
}
