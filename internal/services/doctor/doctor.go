// Package doctor принимает заявки на консультацию врача.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/felix-musau/myai/internal/lib/idgen"
	"github.com/felix-musau/myai/internal/lib/rabbitmq"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
)

// ErrValidation не заполнены обязательные поля заявки.
var ErrValidation = errors.New("fullName, email and symptoms required")

const submittedMessage = "Your consultation request has been submitted successfully."

var nextSteps = []string{
	"Our team will review your request",
	"You will receive a confirmation email shortly",
	"A healthcare provider will contact you to confirm the appointment",
}

// Repository хранилище заявок.
type Repository interface {
	CreateDoctorRequest(ctx context.Context, r models.DoctorRequest) error
}

// Publisher публикует уведомления в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// RequestIDGenerator выдает идентификаторы вида PREFIX-<id>.
type RequestIDGenerator interface {
	NewRequestID(prefix string) string
}

// Submission ответ на принятую заявку.
type Submission struct {
	Success               bool     `json:"success"`
	Message               string   `json:"message"`
	RequestID             string   `json:"requestId"`
	EstimatedResponseTime string   `json:"estimatedResponseTime"`
	NextSteps             []string `json:"nextSteps"`
}

type Service struct {
	log       *slog.Logger
	repo      Repository
	publisher Publisher
	ids       RequestIDGenerator
	now       func() time.Time
}

func New(log *slog.Logger, repo Repository, publisher Publisher, ids RequestIDGenerator) *Service {
	return &Service{log: log, repo: repo, publisher: publisher, ids: ids, now: time.Now}
}

// Submit сохраняет заявку и ставит в очередь письмо-подтверждение.
// Сбой публикации не влияет на ответ клиенту.
func (s *Service) Submit(ctx context.Context, req models.DoctorRequest) (*Submission, error) {
	const op = "doctor.Submit"

	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Symptoms) == "" {
		return nil, ErrValidation
	}
	if req.Urgency == "" {
		req.Urgency = models.UrgencyLow
	}

	req.RequestID = s.ids.NewRequestID(idgen.PrefixDoctorRequest)
	req.CreatedAt = s.now().UTC()
	if err := s.repo.CreateDoctorRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	eta := EstimatedResponseTime(req.Urgency)
	s.log.Info("doctor consultation request received",
		slog.String("request_id", req.RequestID),
		slog.String("urgency", req.Urgency),
		slog.String("specialty", req.Specialty),
	)

	notification := models.DoctorRequestNotification{
		RequestID:             req.RequestID,
		FullName:              req.FullName,
		Email:                 req.Email,
		Urgency:               req.Urgency,
		EstimatedResponseTime: eta,
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeyDoctorRequest, notification); err != nil {
		s.log.Error("failed to publish doctor request notification",
			sl.Op(op), slog.String("request_id", req.RequestID), sl.Err(err))
	}

	return &Submission{
		Success:               true,
		Message:               submittedMessage,
		RequestID:             req.RequestID,
		EstimatedResponseTime: eta,
		NextSteps:             append([]string(nil), nextSteps...),
	}, nil
}

// EstimatedResponseTime срок ответа в зависимости от срочности.
func EstimatedResponseTime(urgency string) string {
	switch urgency {
	case models.UrgencyHigh:
		return "2-4 hours"
	case models.UrgencyMedium:
		return "24 hours"
	default:
		return "48 hours"
	}
}
