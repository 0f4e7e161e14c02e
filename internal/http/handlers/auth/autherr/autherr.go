// Package autherr переводит ошибки сервиса аутентификации в HTTP-ответы.
package autherr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/services/auth"
)

// Write пишет ответ для err. Непредвиденные ошибки логируются, клиент
// получает общее сообщение.
func Write(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var vErr *auth.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.Info("validation failed", slog.String("reason", vErr.Message))
		response.JSON(w, r, http.StatusBadRequest, response.Error(vErr.Message))
	case errors.Is(err, auth.ErrUserExists):
		log.Info("user already exists")
		response.JSON(w, r, http.StatusBadRequest, response.Error("User exists"))
	case errors.Is(err, auth.ErrInvalidCredentials):
		log.Info("invalid credentials")
		response.JSON(w, r, http.StatusBadRequest, response.Error("Invalid credentials"))
	case errors.Is(err, auth.ErrInvalidToken):
		log.Info("invalid token", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("Invalid or expired token"))
	case errors.Is(err, auth.ErrUserNotFound):
		log.Info("user not found")
		response.JSON(w, r, http.StatusNotFound, response.Error("User not found"))
	case errors.Is(err, auth.ErrEmailDelivery):
		log.Error("email delivery failed", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Failed to send email"))
	default:
		log.Error("unexpected error", sl.Err(err))
		response.Internal(w, r)
	}
}
