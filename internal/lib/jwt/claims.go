package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Назначения токенов.
const (
	PurposeSession       = "session"
	PurposePasswordReset = "password_reset"
)

// ErrWrongPurpose возвращается, если токен выпущен для другой цели.
var ErrWrongPurpose = errors.New("token purpose mismatch")

// SessionClaims описывает данные сессионного токена.
type SessionClaims struct {
	UserID               int64  `json:"id,string"` // Идентификатор пользователя
	Username             string `json:"username"`  // Имя пользователя
	Purpose              string `json:"purpose"`
	jwt.RegisteredClaims        // ID (jti), IssuedAt, ExpiresAt
}

// ResetClaims описывает данные токена сброса пароля.
type ResetClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateSessionToken создает сессионный JWT, подписывая его секретным ключом.
//
// Каждый токен получает уникальный jti, по которому его можно отозвать.
func (j *MakerImpl) GenerateSessionToken(userID int64, username string) (string, *SessionClaims, error) {
	const op = "jwt.GenerateSessionToken"
	now := j.now()
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Purpose:  PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	signed, err := j.sign(claims)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return signed, claims, nil
}

// ParseSessionToken парсит сессионный токен и возвращает его claims.
func (j *MakerImpl) ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseSessionToken"
	claims := &SessionClaims{}
	if err := j.parse(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.Purpose != PurposeSession {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongPurpose)
	}
	return claims, nil
}

// GenerateResetToken создает токен сброса пароля со сроком resetTTL.
func (j *MakerImpl) GenerateResetToken(email string) (string, *ResetClaims, error) {
	const op = "jwt.GenerateResetToken"
	now := j.now()
	claims := &ResetClaims{
		Email:   email,
		Purpose: PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.resetTTL)),
		},
	}
	signed, err := j.sign(claims)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return signed, claims, nil
}

// ParseResetToken парсит токен сброса пароля и возвращает его claims.
func (j *MakerImpl) ParseResetToken(tokenStr string) (*ResetClaims, error) {
	const op = "jwt.ParseResetToken"
	claims := &ResetClaims{}
	if err := j.parse(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.Purpose != PurposePasswordReset {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongPurpose)
	}
	return claims, nil
}

func (j *MakerImpl) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *MakerImpl) parse(tokenStr string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
