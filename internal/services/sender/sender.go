// Package sender формирует и отправляет письма: ссылку на сброс пароля
// и подтверждение заявки к врачу.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/felix-musau/myai/internal/lib/sl"
	"github.com/felix-musau/myai/internal/lib/smtp"
	"github.com/felix-musau/myai/internal/models"
)

const (
	contentTypeText = "text/plain; charset=\"UTF-8\""
	contentTypeHTML = "text/html; charset=\"UTF-8\""
)

// SenderService отправляет письма через SMTP-транспорт.
type SenderService struct {
	transport smtp.Connector
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.Connector) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendPasswordReset отправляет письмо со ссылкой на сброс пароля.
func (s *SenderService) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	const op = "sender.SendPasswordReset"

	link := html.EscapeString(resetURL)
	body := fmt.Sprintf(
		`<p>Click to reset your password: <a href="%s">Reset Password</a></p><p>Or copy this URL: %s</p>`,
		link, link)

	if err := s.sendEmail(ctx, []string{to}, "Reset your password", contentTypeHTML, body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendDoctorRequestConfirmation обрабатывает сообщение из очереди notification.doctor_request.
// Нераспознанное сообщение логируется и отбрасывается, чтобы не зациклить очередь.
func (s *SenderService) SendDoctorRequestConfirmation(ctx context.Context, body []byte) error {
	const op = "sender.SendDoctorRequestConfirmation"

	var message models.DoctorRequestNotification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body, dropping", sl.Op(op), sl.Err(err))
		return nil
	}
	if message.Email == "" {
		s.log.Warn("doctor request without email, dropping", slog.String("request_id", message.RequestID))
		return nil
	}

	subject := "Your consultation request " + message.RequestID
	bodyText := fmt.Sprintf("Hello, %s!\n\n"+
		"Your consultation request %s (urgency: %s) has been received.\n"+
		"Estimated response time: %s.\n\n"+
		"A healthcare provider will contact you to confirm the appointment.",
		message.FullName, message.RequestID, message.Urgency, message.EstimatedResponseTime)

	if err := s.sendEmail(ctx, []string{message.Email}, subject, contentTypeText, bodyText); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// sendEmail отправляет одно письмо. Адрес отправителя может быть задан
// в виде "Имя <addr>": в MAIL FROM уходит только addr, имя остаётся в заголовке From.
func (s *SenderService) sendEmail(ctx context.Context, to []string, subject, contentType, bodyText string) error {
	from, err := mail.ParseAddress(s.transport.From())
	if err != nil {
		s.log.Error("invalid sender address", slog.String("from", s.transport.From()), sl.Err(err))
		return fmt.Errorf("parse sender address: %w", err)
	}
	msg := strings.Join([]string{
		"From: " + from.String(),
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType,
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect(ctx)
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(from.Address); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from.Address), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
