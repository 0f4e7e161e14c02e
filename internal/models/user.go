// Package models содержит доменные модели сервиса: пользователь, консультации,
// отзывы, заявки к врачу и результаты анализов.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64     // Snowflake-идентификатор
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // bcrypt-хэш пароля
	IsVerified   bool      // Подтверждение email отключено, всегда true
	CreatedAt    time.Time // Дата регистрации
}

// AuthResult результат регистрации или входа.
type AuthResult struct {
	Username  string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// AuthStatus ответ на проверку сессии.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// SessionUser пользователь, извлечённый из сессионного токена.
type SessionUser struct {
	ID       int64
	Username string
	TokenID  string
}
