// Package myai собирает HTTP-приложение: хранилище, кеш, брокер, сервисы и маршруты.
package myai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"

	"github.com/felix-musau/myai/internal/cache"
	"github.com/felix-musau/myai/internal/config"
	"github.com/felix-musau/myai/internal/http/handlers/health"
	"github.com/felix-musau/myai/internal/lib/idgen"
	"github.com/felix-musau/myai/internal/lib/jwt"
	"github.com/felix-musau/myai/internal/lib/rabbitmq"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/lib/smtp"
	"github.com/felix-musau/myai/internal/metrics"
	"github.com/felix-musau/myai/internal/migrations"
	"github.com/felix-musau/myai/internal/mlclient"
	authservice "github.com/felix-musau/myai/internal/services/auth"
	"github.com/felix-musau/myai/internal/services/consultation"
	"github.com/felix-musau/myai/internal/services/doctor"
	"github.com/felix-musau/myai/internal/services/lab"
	senderservice "github.com/felix-musau/myai/internal/services/sender"
	"github.com/felix-musau/myai/internal/services/testimonial"
	"github.com/felix-musau/myai/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *storage.Storage
	cache     *cache.Cache
	conn      *amqp.Connection
	publisher *rabbitmq.Publisher
}

// New подключается к зависимостям, применяет миграции и готовит HTTP-сервер.
// При ошибке уже открытые соединения закрываются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (app *App, err error) {
	const op = "app.myai.New"

	a := &App{logger: logger}
	defer func() {
		if err != nil {
			a.closeAll()
		}
	}()

	a.db, err = storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(a.db.DB, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.conn, err = rabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(a.conn, 0, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.publisher = rabbitmq.NewPublisher(ch)

	ids, err := idgen.New(cfg.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL, cfg.ResetTokenTTL)
	mailer := senderservice.NewSenderService(logger, smtp.NewTransport(cfg.SMTP, logger))

	m := metrics.New(prometheus.DefaultRegisterer)

	services := Services{
		Auth: authservice.NewAuthService(logger, a.db, a.cache, mailer, jwtMaker, ids, authservice.Options{
			FrontendURL:  cfg.FrontendURL,
			EmailTimeout: cfg.SMTPTimeout,
		}),
		Testimonials:  testimonial.New(logger, a.db, a.cache),
		Doctor:        doctor.New(logger, a.db, a.publisher, ids),
		Lab:           lab.New(logger, ids),
		Consultations: consultation.New(logger, a.db, mlclient.New(cfg.MLServiceURL, cfg.MLServiceTimeout)),
		Ready: health.NewReady(logger, 2*time.Second, map[string]health.Pinger{
			"postgres": a.db,
			"redis":    a.cache,
		}),
		Metrics:        m,
		MetricsHandler: promhttp.Handler(),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, services)

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер
// с таймаутом 15 секунд и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}
	a.closeAll()
	return err
}

func (a *App) closeAll() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close database", sl.Err(err))
		}
	}
}
