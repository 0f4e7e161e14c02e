// Package auth содержит бизнес-логику аутентификации: регистрацию, вход,
// выход, проверку сессии и сброс пароля по email.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/felix-musau/myai/internal/lib/jwt"
	"github.com/felix-musau/myai/internal/lib/password"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/models"
	"github.com/felix-musau/myai/internal/storage"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет пользователя. Дубликат возвращается как storage.ErrUserExists.
	CreateUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdatePasswordHash меняет хэш пароля, storage.ErrUserNotFound если пользователя нет.
	UpdatePasswordHash(ctx context.Context, email, passwordHash string) error
}

// TokenStore хранит отозванные сессии и использованные токены сброса.
type TokenStore interface {
	RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, tokenID string) (bool, error)
	ClaimResetToken(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
	ReleaseResetToken(ctx context.Context, tokenID string) error
}

// EmailSender отправляет письмо со ссылкой на сброс пароля.
type EmailSender interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// IDGenerator выдает идентификаторы новых пользователей.
type IDGenerator interface {
	NewUserID() int64
}

// Options параметры сервиса.
type Options struct {
	FrontendURL  string        // база ссылки на сброс пароля
	EmailTimeout time.Duration // ограничение на отправку письма
}

// AuthService отвечает за регистрацию, вход, сессии и сброс пароля.
type AuthService struct {
	log          *slog.Logger
	users        UserRepository
	tokens       TokenStore
	mailer       EmailSender
	jwtMaker     jwt.Maker
	ids          IDGenerator
	frontendURL  string
	emailTimeout time.Duration
	now          func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(
	log *slog.Logger,
	users UserRepository,
	tokens TokenStore,
	mailer EmailSender,
	jwtMaker jwt.Maker,
	ids IDGenerator,
	opts Options,
) *AuthService {
	return &AuthService{
		log:          log,
		users:        users,
		tokens:       tokens,
		mailer:       mailer,
		jwtMaker:     jwtMaker,
		ids:          ids,
		frontendURL:  strings.TrimRight(opts.FrontendURL, "/"),
		emailTimeout: opts.EmailTimeout,
		now:          time.Now,
	}
}

// Register создает пользователя и сразу открывает для него сессию.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (*models.AuthResult, error) {
	const op = "auth.Register"

	if isBlank(username) || isBlank(email) || rawPassword == "" {
		return nil, validation("All fields required")
	}

	hashed, err := hashPassword(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:           s.ids.NewUserID(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsVerified:   true,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.openSession(op, user)
}

// Login проверяет пароль и выдает сессионный токен.
// Отсутствующий пользователь и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.AuthResult, error) {
	const op = "auth.Login"

	if username == "" || rawPassword == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.openSession(op, *user)
}

// Logout отзывает сессионный токен, если он валиден. Ошибки только логируются.
func (s *AuthService) Logout(ctx context.Context, token string) {
	const op = "auth.Logout"
	if token == "" {
		return
	}

	claims, err := s.jwtMaker.ParseSessionToken(token)
	if err != nil {
		return
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.tokens.RevokeSession(ctx, claims.ID, ttl); err != nil {
		s.log.Error("failed to revoke session", sl.Op(op), sl.Err(err))
	}
}

// Authenticate проверяет сессионный токен и возвращает пользователя сессии.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.SessionUser, error) {
	const op = "auth.Authenticate"
	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, err := s.jwtMaker.ParseSessionToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	revoked, err := s.tokens.IsSessionRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return &models.SessionUser{
		ID:       claims.UserID,
		Username: claims.Username,
		TokenID:  claims.ID,
	}, nil
}

// CheckAuth сообщает, аутентифицирован ли владелец токена. Никогда не возвращает ошибку.
func (s *AuthService) CheckAuth(ctx context.Context, token string) models.AuthStatus {
	const op = "auth.CheckAuth"

	user, err := s.Authenticate(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrInvalidToken) {
			s.log.Error("session check failed", sl.Op(op), sl.Err(err))
		}
		return models.AuthStatus{Authenticated: false}
	}
	return models.AuthStatus{Authenticated: true, Username: user.Username}
}

// ForgotPassword отправляет на email ссылку со сроком действия reset_token_ttl.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	const op = "auth.ForgotPassword"

	if isBlank(email) {
		return validation("Email required")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	token, _, err := s.jwtMaker.GenerateResetToken(email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sendCtx := ctx
	if s.emailTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.emailTimeout)
		defer cancel()
	}
	if err := s.mailer.SendPasswordReset(sendCtx, email, s.resetURL(token)); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrEmailDelivery, err)
	}
	return nil
}

// ResetPassword заменяет пароль по токену сброса. Токен одноразовый.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	const op = "auth.ResetPassword"

	if token == "" || newPassword == "" {
		return validation("Token and password required")
	}

	claims, err := s.jwtMaker.ParseResetToken(token)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	if _, err := s.users.GetUserByEmail(ctx, claims.Email); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	claimed, err := s.tokens.ClaimResetToken(ctx, claims.ID, claims.ExpiresAt.Sub(s.now()))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !claimed {
		return fmt.Errorf("%s: token already used: %w", op, ErrInvalidToken)
	}

	if err := s.users.UpdatePasswordHash(ctx, claims.Email, hashed); err != nil {
		if releaseErr := s.tokens.ReleaseResetToken(ctx, claims.ID); releaseErr != nil {
			s.log.Error("failed to release reset token", sl.Op(op), sl.Err(releaseErr))
		}
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *AuthService) openSession(op string, user models.User) (*models.AuthResult, error) {
	token, claims, err := s.jwtMaker.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.AuthResult{
		Username:  user.Username,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *AuthService) resetURL(token string) string {
	return s.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

func hashPassword(raw string) (string, error) {
	hashed, err := password.GetHash(raw)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return "", validation("Password must be at most 72 bytes")
		}
		return "", err
	}
	return hashed, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
