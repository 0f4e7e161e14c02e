// Package testimonial управляет отзывами и их сводной статистикой.
package testimonial

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
)

// CacheKey ключ кеша списка отзывов со сводкой.
const CacheKey = "testimonials:summary"

// CacheTTL время жизни кеша.
const CacheTTL = 10 * time.Minute

var (
	// ErrValidation не заполнены name, rating или text.
	ErrValidation = errors.New("name, rating and text required")
	// ErrInvalidRating оценка вне диапазона 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Repository хранилище отзывов.
type Repository interface {
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, t models.Testimonial) (int64, error)
}

// Cache кеш для готового ответа.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type Service struct {
	log   *slog.Logger
	repo  Repository
	cache Cache
	now   func() time.Time
}

func New(log *slog.Logger, repo Repository, cache Cache) *Service {
	return &Service{log: log, repo: repo, cache: cache, now: time.Now}
}

// List возвращает все отзывы со сводкой. Ошибки кеша не прерывают запрос.
func (s *Service) List(ctx context.Context) (*models.TestimonialList, error) {
	const op = "testimonial.List"

	var cached models.TestimonialList
	found, err := s.cache.Get(ctx, CacheKey, &cached)
	if err != nil {
		s.log.Warn("testimonials cache read failed", sl.Op(op), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	items, err := s.repo.ListTestimonials(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &models.TestimonialList{
		Testimonials: items,
		Summary:      Summarize(items),
	}
	if err := s.cache.Set(ctx, CacheKey, result, CacheTTL); err != nil {
		s.log.Warn("testimonials cache write failed", sl.Op(op), sl.Err(err))
	}
	return result, nil
}

// Create сохраняет отзыв с сегодняшней датой (UTC) и сбрасывает кеш.
func (s *Service) Create(ctx context.Context, name string, rating int, text string) error {
	const op = "testimonial.Create"

	if strings.TrimSpace(name) == "" || rating == 0 || strings.TrimSpace(text) == "" {
		return ErrValidation
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	t := models.Testimonial{
		Name:   name,
		Rating: rating,
		Text:   text,
		Date:   s.now().UTC().Format(time.DateOnly),
	}
	if _, err := s.repo.CreateTestimonial(ctx, t); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(ctx, CacheKey); err != nil {
		s.log.Error("failed to invalidate testimonials cache", sl.Op(op), sl.Err(err))
	}
	return nil
}

// Summarize считает среднюю оценку с точностью до десятых и распределение по 1..5.
func Summarize(items []models.Testimonial) models.TestimonialSummary {
	summary := models.TestimonialSummary{
		TotalReviews:       len(items),
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(items) == 0 {
		return summary
	}

	total := 0
	for _, t := range items {
		total += t.Rating
		if _, ok := summary.RatingDistribution[t.Rating]; ok {
			summary.RatingDistribution[t.Rating]++
		}
	}
	summary.AverageRating = math.Round(float64(total)/float64(len(items))*10) / 10
	return summary
}
