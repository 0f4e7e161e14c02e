package list

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/felix-musau/myai/internal/lib/logger"
	"github.com/felix-musau/myai/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context) (*models.TestimonialList, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*models.TestimonialList)
	return res, args.Error(1)
}

func TestListHandler(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("List", mock.Anything).Return(&models.TestimonialList{
		Testimonials: []models.Testimonial{{ID: 1, Name: "Sarah M.", Rating: 5, Text: "Great", Date: "2026-02-25"}},
		Summary: models.TestimonialSummary{
			AverageRating:      5,
			TotalReviews:       1,
			RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 1},
		},
	}, nil).Once()

	rec := httptest.NewRecorder()
	New(logger.NewNoop(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/testimonials", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"testimonials": [{"id":1,"name":"Sarah M.","rating":5,"text":"Great","date":"2026-02-25"}],
		"summary": {"averageRating":5,"totalReviews":1,"ratingDistribution":{"1":0,"2":0,"3":0,"4":0,"5":1}}
	}`, rec.Body.String())
}

func TestListHandler_Empty(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("List", mock.Anything).Return(&models.TestimonialList{}, nil).Once()

	rec := httptest.NewRecorder()
	New(logger.NewNoop(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/testimonials", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"testimonials":[]`)
}

func TestListHandler_Error(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("List", mock.Anything).Return(nil, errors.New("db down")).Once()

	rec := httptest.NewRecorder()
	New(logger.NewNoop(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/testimonials", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
