package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felix-musau/myai/internal/lib/logger"
	"github.com/felix-musau/myai/internal/services/testimonial"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, name string, rating int, text string) error {
	return m.Called(ctx, name, rating, text).Error(0)
}

func TestRating_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Rating
	}{
		{`5`, 5},
		{`"4"`, 4},
		{`"great"`, 0},
		{`null`, 0},
		{`3.0`, 3},
	}
	for _, tt := range tests {
		var r Rating
		require.NoError(t, json.Unmarshal([]byte(tt.in), &r), tt.in)
		assert.Equal(t, tt.want, r, tt.in)
	}

	var r Rating
	assert.Error(t, json.Unmarshal([]byte(`{}`), &r))
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockArgs   []any
		mockErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "created",
			body:       `{"name":"Jane","rating":"5","text":"Helpful"}`,
			mockArgs:   []any{"Jane", 5, "Helpful"},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true}`,
		},
		{
			name:       "missing text",
			body:       `{"name":"Jane","rating":5}`,
			mockArgs:   []any{"Jane", 5, ""},
			mockErr:    testimonial.ErrValidation,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"name, rating and text required"}`,
		},
		{
			name:       "rating out of range",
			body:       `{"name":"Jane","rating":9,"text":"Helpful"}`,
			mockArgs:   []any{"Jane", 9, "Helpful"},
			mockErr:    testimonial.ErrInvalidRating,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"rating must be between 1 and 5"}`,
		},
		{
			name:       "storage failure",
			body:       `{"name":"Jane","rating":5,"text":"Helpful"}`,
			mockArgs:   []any{"Jane", 5, "Helpful"},
			mockErr:    errors.New("insert failed"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Create", append([]any{mock.Anything}, tt.mockArgs...)...).Return(tt.mockErr).Once()

			rec := httptest.NewRecorder()
			New(logger.NewNoop(), svc).ServeHTTP(rec,
				httptest.NewRequest(http.MethodPost, "/api/testimonials", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
