package storage

import (
	"context"
	"fmt"

	"github.com/felix-musau/myai/internal/models"
)

// CreateDoctorRequest сохраняет заявку на консультацию врача.
func (s *Storage) CreateDoctorRequest(ctx context.Context, r models.DoctorRequest) error {
	const op = "storage.CreateDoctorRequest"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO doctor_requests (request_id, full_name, email, phone, symptoms,
			      preferred_date, preferred_time, urgency, specialty, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.DB.ExecContext(ctx, query,
		r.RequestID, r.FullName, r.Email, r.Phone, r.Symptoms,
		r.PreferredDate, r.PreferredTime, r.Urgency, r.Specialty, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
