package autherr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felix-musau/myai/internal/lib/logger"
	"github.com/felix-musau/myai/internal/services/auth"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", &auth.ValidationError{Message: "All fields required"}, http.StatusBadRequest, `{"error":"All fields required"}`},
		{"wrapped validation", fmt.Errorf("auth.Register: %w", &auth.ValidationError{Message: "Email required"}), http.StatusBadRequest, `{"error":"Email required"}`},
		{"exists", fmt.Errorf("op: %w", auth.ErrUserExists), http.StatusBadRequest, `{"error":"User exists"}`},
		{"credentials", auth.ErrInvalidCredentials, http.StatusBadRequest, `{"error":"Invalid credentials"}`},
		{"token", auth.ErrInvalidToken, http.StatusBadRequest, `{"error":"Invalid or expired token"}`},
		{"not found", auth.ErrUserNotFound, http.StatusNotFound, `{"error":"User not found"}`},
		{"email", fmt.Errorf("op: %w: %w", auth.ErrEmailDelivery, errors.New("dial tcp: timeout")), http.StatusInternalServerError, `{"error":"Failed to send email"}`},
		{"unexpected", errors.New("pq: relation users does not exist"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", nil)

			Write(rr, req, logger.NewNoop(), tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
