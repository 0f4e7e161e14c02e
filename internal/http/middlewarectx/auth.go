package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/felix-musau/myai/internal/http/response"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
	"github.com/felix-musau/myai/internal/services/auth"
)

// Authenticator проверяет сессионный токен.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.SessionUser, error)
}

// RequireAuth пропускает запрос дальше только с валидной неотозванной сессией.
//
// Без токена отвечает 401 "No token", с невалидным токеном 401 "Invalid token".
// Ошибка хранилища отзывов дает 500.
func RequireAuth(log *slog.Logger, authenticator Authenticator, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuth"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := TokenFromRequest(r, cookieName)
			if token == "" {
				log.Info("request without session token")
				response.JSON(w, r, http.StatusUnauthorized, response.Error("No token"))
				return
			}

			user, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					log.Info("invalid session token", sl.Err(err))
					response.JSON(w, r, http.StatusUnauthorized, response.Error("Invalid token"))
					return
				}
				log.Error("failed to authenticate", sl.Err(err))
				response.Internal(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user)))
		})
	}
}
