// Package logger настраивает slog в зависимости от окружения.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"

	"github.com/felix-musau/myai/internal/config"
)

// Options параметры файлового вывода.
type Options struct {
	File         string
	MaxAge       time.Duration
	RotationTime time.Duration
}

// New создает логгер: текстовый с уровнем debug для local, JSON с debug для dev
// и JSON с info для prod. Если задан файл, вывод дублируется в него
// с ежедневной ротацией.
func New(env string, opts Options) (*slog.Logger, io.Closer, error) {
	const op = "logger.New"

	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		rl, err := newRotating(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		out = io.MultiWriter(os.Stdout, rl)
		closer = rl
	}

	return slog.New(handlerFor(env, out)), closer, nil
}

func handlerFor(env string, out io.Writer) slog.Handler {
	switch env {
	case config.EnvProd:
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	case config.EnvDev:
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		return slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

func newRotating(opts Options) (*rotatelogs.RotateLogs, error) {
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	rotation := opts.RotationTime
	if rotation <= 0 {
		rotation = 24 * time.Hour
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, err
	}
	return rotatelogs.New(
		opts.File+".%Y%m%d",
		rotatelogs.WithLinkName(opts.File),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotation),
	)
}

// NewNoop возвращает логгер, отбрасывающий все записи. Используется в тестах.
func NewNoop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
