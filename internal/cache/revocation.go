package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	revokedSessionPrefix = "auth:revoked:"
	usedResetPrefix      = "auth:reset-used:"
)

// RevokeSession помещает jti сессионного токена в denylist до истечения ttl.
// Токен с уже истекшим сроком в denylist не попадает.
func (c *Cache) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	const op = "cache.RevokeSession"
	if ttl <= 0 {
		return nil
	}
	if err := c.Db.Set(ctx, revokedSessionPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsSessionRevoked сообщает, был ли токен с данным jti отозван.
func (c *Cache) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	const op = "cache.IsSessionRevoked"
	n, err := c.Db.Exists(ctx, revokedSessionPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// ClaimResetToken атомарно отмечает токен сброса пароля как использованный.
// Возвращает false, если токен уже был использован.
func (c *Cache) ClaimResetToken(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	const op = "cache.ClaimResetToken"
	if ttl <= 0 {
		ttl = time.Second
	}
	ok, err := c.Db.SetNX(ctx, usedResetPrefix+tokenID, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// ReleaseResetToken снимает отметку, если пароль так и не был изменен.
func (c *Cache) ReleaseResetToken(ctx context.Context, tokenID string) error {
	const op = "cache.ReleaseResetToken"
	if err := c.Db.Del(ctx, usedResetPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
