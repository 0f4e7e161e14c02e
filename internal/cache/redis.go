// Package cache хранит в Redis кешированные ответы и отозванные токены.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felix-musau/myai/internal/config"
	"github.com/redis/go-redis/v9"
)

// Cache обертка над клиентом Redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get декодирует JSON по ключу key в result. Отсутствие ключа не ошибка:
// возвращается false.
func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	raw, err := c.Db.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%s: %s: %w", op, key, err)
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return false, fmt.Errorf("%s: decode %s: %w", op, key, err)
	}
	return true, nil
}

// Set кладёт value в JSON на время ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	const op = "cache.Set"
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: encode %s: %w", op, key, err)
	}
	return wrap(op, c.Db.Set(ctx, key, raw, ttl).Err())
}

// Invalidate удаляет ключ, например после изменения списка отзывов.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return wrap("cache.Invalidate", c.Db.Del(ctx, key).Err())
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Ping проверяет доступность Redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.Db.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.Db.Close()
}
