// Package middlewarectx содержит HTTP middleware сервиса: проверку сессии,
// ограничение частоты запросов и сбор метрик.
package middlewarectx

import (
	"context"
	"net/http"
	"strings"

	"github.com/felix-musau/myai/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ пользователя сессии в контексте.
const User Key = "user"

// WithUser кладет пользователя сессии в контекст.
func WithUser(ctx context.Context, user models.SessionUser) context.Context {
	return context.WithValue(ctx, User, user)
}

// UserFromContext достает пользователя, положенного RequireAuth.
func UserFromContext(ctx context.Context) (models.SessionUser, bool) {
	user, ok := ctx.Value(User).(models.SessionUser)
	return user, ok
}

// TokenFromRequest возвращает сессионный токен: сначала из cookie,
// затем из заголовка Authorization: Bearer.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
