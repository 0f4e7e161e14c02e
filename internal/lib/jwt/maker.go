// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker выпускает два вида токенов: сессионный (id и username пользователя)
// и токен сброса пароля (email). Вид токена записан в claim purpose,
// поэтому токен одного вида нельзя предъявить вместо другого.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateSessionToken создаёт сессионный токен для пользователя.
	GenerateSessionToken(userID int64, username string) (string, *SessionClaims, error)
	// ParseSessionToken проверяет подпись, срок действия и назначение токена.
	ParseSessionToken(tokenStr string) (*SessionClaims, error)
	// GenerateResetToken создаёт токен сброса пароля для email.
	GenerateResetToken(email string) (string, *ResetClaims, error)
	// ParseResetToken проверяет токен сброса пароля.
	ParseResetToken(tokenStr string) (*ResetClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токенов (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни сессионного токена.
	resetTTL  time.Duration // Время жизни токена сброса пароля.
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl, resetTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		resetTTL:  resetTTL,
		now:       time.Now,
	}
}

// TokenTTL возвращает время жизни сессионного токена.
func (j *MakerImpl) TokenTTL() time.Duration {
	return j.tokenTTL
}
