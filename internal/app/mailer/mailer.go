// Package mailer собирает воркер рассылки: потребляет очередь подтверждений
// заявок к врачу и отправляет письма через SMTP. Состояние воркера
// отдается по gRPC Health Checking Protocol.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/streadway/amqp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/felix-musau/myai/internal/config"
	"github.com/felix-musau/myai/internal/lib/rabbitmq"
	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/lib/smtp"
	senderservice "github.com/felix-musau/myai/internal/services/sender"
)

// ServiceName имя сервиса в ответах health-проверки.
const ServiceName = "myai.mailer"

type App struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	sender     *senderservice.SenderService
	workers    int
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	logger     *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.mailer.New"

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, cfg.Workers, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lis, err := net.Listen("tcp", cfg.HealthAddress)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grpcServer, healthServer := NewHealthServer()

	return &App{
		conn:       conn,
		ch:         ch,
		sender:     senderservice.NewSenderService(logger, smtp.NewTransport(cfg.SMTP, logger)),
		workers:    cfg.Workers,
		grpcServer: grpcServer,
		health:     healthServer,
		listener:   lis,
		logger:     logger,
	}, nil
}

// NewHealthServer создает gRPC-сервер со службой grpc.health.v1.Health.
// Изначально сервис в состоянии NOT_SERVING.
func NewHealthServer() (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	return grpcServer, healthServer
}

// Run обрабатывает сообщения до отмены ctx или потери соединения с брокером.
func (a *App) Run(ctx context.Context) error {
	const op = "app.mailer.Run"

	go func() {
		a.logger.Info("health gRPC service listening on", slog.String("address", a.listener.Addr().String()))
		if err := a.grpcServer.Serve(a.listener); err != nil {
			a.logger.Error("health server stopped", sl.Err(err))
		}
	}()

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done, err := rabbitmq.ConsumerMessage(consumeCtx, a.logger, a.ch, rabbitmq.QueueDoctorRequest, a.workers, a.sender.SendDoctorRequestConfirmation)
	if err != nil {
		a.shutdown()
		return fmt.Errorf("%s: %w", op, err)
	}
	a.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	a.logger.Info("mailer consuming", slog.String("queue", rabbitmq.QueueDoctorRequest), slog.Int("workers", a.workers))

	closed := a.conn.NotifyClose(make(chan *amqp.Error, 1))

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("mailer shutting down gracefully")
	case amqpErr := <-closed:
		if amqpErr != nil {
			runErr = fmt.Errorf("%s: connection closed: %w", op, amqpErr)
		} else {
			runErr = fmt.Errorf("%s: connection closed", op)
		}
	}

	a.health.Shutdown()
	cancel()
	<-done
	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	a.grpcServer.GracefulStop()
	if err := a.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
}
