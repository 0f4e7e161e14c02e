//go:build integration

package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/felix-musau/myai/internal/migrations"
	"github.com/felix-musau/myai/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и накатывает миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("myai"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	root, err := filepath.Abs("../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(s.DB, filepath.Join(root, "migrations")))

	return s
}

func TestIntegration_Users(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()

	alice := models.User{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "h1", IsVerified: true}
	require.NoError(t, s.CreateUser(ctx, alice))

	dupName := models.User{ID: 2, Username: "alice", Email: "other@example.com", PasswordHash: "h2", IsVerified: true}
	assert.ErrorIs(t, s.CreateUser(ctx, dupName), ErrUserExists)

	dupEmail := models.User{ID: 3, Username: "alice2", Email: "alice@example.com", PasswordHash: "h3", IsVerified: true}
	assert.ErrorIs(t, s.CreateUser(ctx, dupEmail), ErrUserExists)

	got, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, s.UpdatePasswordHash(ctx, "alice@example.com", "h9"))
	got, err = s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h9", got.PasswordHash)

	assert.ErrorIs(t, s.UpdatePasswordHash(ctx, "missing@example.com", "x"), ErrUserNotFound)
}

func TestIntegration_ConsultationsAndTestimonials(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, models.User{ID: 10, Username: "bob", Email: "bob@example.com", PasswordHash: "h"}))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, disease := range []string{"Flu", "Cold", "Migraine"} {
		_, err := s.CreateConsultation(ctx, models.Consultation{
			UserID: 10, Username: "bob", Symptoms: map[string]int{"fever": i}, Disease: disease,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	list, err := s.ListConsultations(ctx, 10, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Migraine", list[0].Disease)
	assert.Equal(t, "Cold", list[1].Disease)

	seeded, err := s.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 7)
	assert.Equal(t, "2026-02-25", seeded[0].Date)

	_, err = s.CreateTestimonial(ctx, models.Testimonial{Name: "Bob", Rating: 3, Text: "ok", Date: "2026-10-19"})
	require.NoError(t, err)

	all, err := s.ListTestimonials(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 8)
	assert.Equal(t, "2026-10-19", all[7].Date)

	require.NoError(t, s.CreateDoctorRequest(ctx, models.DoctorRequest{
		RequestID: "REQ-1", FullName: "Jane", Email: "jane@example.com", Symptoms: "pain",
		Urgency: models.UrgencyLow, CreatedAt: base,
	}))
}
