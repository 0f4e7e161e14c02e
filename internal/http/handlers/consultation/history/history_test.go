package history

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/felix-musau/myai/internal/http/middlewarectx"
	"github.com/felix-musau/myai/internal/lib/logger"
	"github.com/felix-musau/myai/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) History(ctx context.Context, userID int64, limit, offset int) ([]models.Consultation, error) {
	args := m.Called(ctx, userID, limit, offset)
	res, _ := args.Get(0).([]models.Consultation)
	return res, args.Error(1)
}

func request(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(middlewarectx.WithUser(req.Context(), models.SessionUser{ID: 7, Username: "alice"}))
}

func TestHistoryHandler(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := new(ServiceMock)
	svc.On("History", mock.Anything, int64(7), 20, 40).Return([]models.Consultation{{
		ID: 1, UserID: 7, Username: "alice", Symptoms: map[string]int{"cough": 1}, Disease: "Flu", CreatedAt: created,
	}}, nil).Once()

	rec := httptest.NewRecorder()
	New(logger.NewNoop(), svc).ServeHTTP(rec, request("/api/history?limit=20&offset=40"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"id":"1","user_id":"7","username":"alice","symptoms":{"cough":1},
		"disease":"Flu","created_at":"2026-03-01T10:00:00Z"
	}]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHistoryHandler_DefaultsAndEmpty(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("History", mock.Anything, int64(7), 0, 0).Return(nil, nil).Once()

	rec := httptest.NewRecorder()
	New(logger.NewNoop(), svc).ServeHTTP(rec, request("/api/history?limit=abc"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHistoryHandler_Error(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("History", mock.Anything, int64(7), 0, 0).Return(nil, errors.New("query failed")).Once()

	rec := httptest.NewRecorder()
	New(logger.NewNoop(), svc).ServeHTTP(rec, request("/api/history"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
