// Package request реализует HTTP-обработчик заявки на консультацию врача.
package request

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
	"github.com/felix-musau/myai/internal/services/doctor"
)

// Request заявка от пользователя.
type Request struct {
	FullName      string `json:"fullName" validate:"required" example:"Jane Doe"`
	Email         string `json:"email" validate:"required,email" example:"jane@example.com"`
	Phone         string `json:"phone" example:"+1 555 0100"`
	Symptoms      string `json:"symptoms" validate:"required" example:"Headache for 3 days"`
	PreferredDate string `json:"preferredDate" example:"2026-03-10"`
	PreferredTime string `json:"preferredTime" example:"10:00"`
	Urgency       string `json:"urgency" validate:"omitempty,oneof=Low Medium High" example:"Medium"`
	Specialty     string `json:"specialty" example:"General Practice"`
}

// ErrorResponse тело ответа с ошибкой в формате эндпоинта.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type Service interface {
	Submit(ctx context.Context, req models.DoctorRequest) (*doctor.Submission, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Заявка на консультацию врача
// @Description Сохраняет заявку и ставит в очередь письмо-подтверждение.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body Request true "Заявка"
// @Success 201 {object} doctor.Submission
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /request-doctor [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.doctor.request"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			log.Error("validator failed", sl.Err(err))
			response.Internal(w, r)
			return
		}
		log.Info("validation failed", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, ErrorResponse{Error: response.ValidationError(vErrs).Error})
		return
	}

	res, err := h.service.Submit(r.Context(), models.DoctorRequest{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Symptoms:      req.Symptoms,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Urgency:       req.Urgency,
		Specialty:     req.Specialty,
	})
	if err != nil {
		if errors.Is(err, doctor.ErrValidation) {
			response.JSON(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		log.Error("failed to submit doctor request", sl.Err(err))
		response.Internal(w, r)
		return
	}

	response.JSON(w, r, http.StatusCreated, res)
}
