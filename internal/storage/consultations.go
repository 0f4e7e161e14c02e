package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felix-musau/myai/internal/models"
)

// CreateConsultation сохраняет результат предсказания и возвращает его ID.
func (s *Storage) CreateConsultation(ctx context.Context, c models.Consultation) (int64, error) {
	const op = "storage.CreateConsultation"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	symptoms, err := json.Marshal(c.Symptoms)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO consultations (user_id, username, symptoms, disease, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id int64
	if err := s.DB.QueryRowContext(ctx, query,
		c.UserID, c.Username, symptoms, c.Disease, c.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListConsultations возвращает консультации пользователя, новые первыми.
func (s *Storage) ListConsultations(ctx context.Context, userID int64, limit, offset uint64) ([]models.Consultation, error) {
	const op = "storage.ListConsultations"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query, args, err := psql.
		Select("id", "user_id", "username", "symptoms", "disease", "created_at").
		From("consultations").
		Where("user_id = ?", userID).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset).
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

	result := make([]models.Consultation, 0)
	for rows.Next() {
		var (
			c        models.Consultation
			symptoms []byte
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.Username, &symptoms, &c.Disease, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(symptoms) > 0 {
			if err := json.Unmarshal(symptoms, &c.Symptoms); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
