package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/felix-musau/myai/internal/models"
)

// ListTestimonials возвращает все отзывы в порядке добавления.
func (s *Storage) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	const op = "storage.ListTestimonials"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query, args, err := psql.
		Select("id", "name", "rating", "text", "to_char(review_date, 'YYYY-MM-DD')").
		From("testimonials").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Testimonial, 0)
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Rating, &t.Text, &t.Date); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateTestimonial сохраняет отзыв и возвращает его ID.
func (s *Storage) CreateTestimonial(ctx context.Context, t models.Testimonial) (int64, error) {
	const op = "storage.CreateTestimonial"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	reviewDate, err := time.Parse(time.DateOnly, t.Date)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO testimonials (name, rating, text, review_date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var id int64
	if err := s.DB.QueryRowContext(ctx, query, t.Name, t.Rating, t.Text, reviewDate).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
