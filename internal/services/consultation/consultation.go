// Package consultation получает предсказание ML-сервиса и ведет историю консультаций.
package consultation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/felix-musau/myai/internal/mlclient"
	"github.com/felix-musau/myai/internal/models"
)

// Ограничения пагинации истории.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

var (
	// ErrNoSymptoms симптомы не переданы.
	ErrNoSymptoms = errors.New("symptoms required")
	// ErrPredictorUnavailable ML-сервис недоступен.
	ErrPredictorUnavailable = errors.New("ml service unavailable")
)

// Repository хранилище консультаций.
type Repository interface {
	CreateConsultation(ctx context.Context, c models.Consultation) (int64, error)
	ListConsultations(ctx context.Context, userID int64, limit, offset uint64) ([]models.Consultation, error)
}

// Predictor внешний сервис предсказаний.
type Predictor interface {
	Predict(ctx context.Context, symptoms map[string]int) (*mlclient.Prediction, error)
}

type Service struct {
	log       *slog.Logger
	repo      Repository
	predictor Predictor
	now       func() time.Time
}

func New(log *slog.Logger, repo Repository, predictor Predictor) *Service {
	return &Service{log: log, repo: repo, predictor: predictor, now: time.Now}
}

// Predict запрашивает диагноз и сохраняет консультацию пользователя.
func (s *Service) Predict(ctx context.Context, user models.SessionUser, symptoms map[string]int) (string, error) {
	const op = "consultation.Predict"

	if len(symptoms) == 0 {
		return "", ErrNoSymptoms
	}

	prediction, err := s.predictor.Predict(ctx, symptoms)
	if err != nil {
		if errors.Is(err, mlclient.ErrUnavailable) {
			return "", fmt.Errorf("%s: %w: %w", op, ErrPredictorUnavailable, err)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	c := models.Consultation{
		UserID:    user.ID,
		Username:  user.Username,
		Symptoms:  symptoms,
		Disease:   prediction.Disease,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.repo.CreateConsultation(ctx, c)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("consultation recorded", slog.Int64("consultation_id", id), slog.String("disease", prediction.Disease))
	return prediction.Disease, nil
}

// History возвращает консультации пользователя, новые первыми.
// limit <= 0 заменяется на DefaultLimit, больше MaxLimit обрезается.
func (s *Service) History(ctx context.Context, userID int64, limit, offset int) ([]models.Consultation, error) {
	const op = "consultation.History"

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.repo.ListConsultations(ctx, userID, uint64(limit), uint64(offset))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
