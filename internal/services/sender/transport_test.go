package sender

import (
	"bufio"
	"context"
	"io"
	"net"
	"net/mail"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felix-musau/myai/internal/config"
	"github.com/felix-musau/myai/internal/lib/logger"
	"github.com/felix-musau/myai/internal/lib/smtp"
)

// strictServer SMTP-сервер, который, как боевые MTA, отвергает
// MAIL FROM с адресом, не являющимся чистым addr-spec.
type strictServer struct {
	ln net.Listener

	mu       sync.Mutex
	envelope string
	data     string
}

func startStrictServer(t *testing.T) *strictServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &strictServer{ln: ln}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serve(conn)
		}
	}()
	return s
}

func (s *strictServer) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(line string) {
		_, _ = io.WriteString(conn, line+"\r\n")
	}

	reply("220 localhost ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimRight(line, "\r\n")
		upper := strings.ToUpper(cmd)
		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			reply("250 localhost")
		case strings.HasPrefix(upper, "MAIL FROM:"):
			path := cmd[len("MAIL FROM:"):]
			addr, ok := strings.CutPrefix(path, "<")
			addr, _, closed := strings.Cut(addr, ">")
			if !ok || !closed || strings.ContainsAny(addr, "<> ") {
				reply("501 5.1.7 Bad sender address syntax")
				continue
			}
			s.mu.Lock()
			s.envelope = addr
			s.mu.Unlock()
			reply("250 OK")
		case strings.HasPrefix(upper, "RCPT TO:"):
			reply("250 OK")
		case upper == "DATA":
			reply("354 go ahead")
			var sb strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				sb.WriteString(l)
			}
			s.mu.Lock()
			s.data = sb.String()
			s.mu.Unlock()
			reply("250 queued")
		case upper == "QUIT":
			reply("221 bye")
			return
		default:
			reply("502 not implemented")
		}
	}
}

func (s *strictServer) transport(from string) *smtp.Transport {
	return smtp.NewTransport(config.SMTP{
		SMTPHost:    "127.0.0.1",
		SMTPPort:    strconv.Itoa(s.ln.Addr().(*net.TCPAddr).Port),
		SMTPFrom:    from,
		SMTPTimeout: 5 * time.Second,
	}, logger.NewNoop())
}

func TestSenderService_DisplayNameFrom(t *testing.T) {
	srv := startStrictServer(t)
	svc := NewSenderService(logger.NewNoop(), srv.transport("MyAI <no-reply@myai.local>"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := svc.SendPasswordReset(ctx, "alice@example.com", "http://localhost:3000/reset-password?token=abc")
	require.NoError(t, err)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, "no-reply@myai.local", srv.envelope)

	msg, err := mail.ReadMessage(strings.NewReader(srv.data))
	require.NoError(t, err)
	from, err := mail.ParseAddress(msg.Header.Get("From"))
	require.NoError(t, err)
	assert.Equal(t, "MyAI", from.Name)
	assert.Equal(t, "no-reply@myai.local", from.Address)
}

func TestSenderService_BareAddressFrom(t *testing.T) {
	srv := startStrictServer(t)
	svc := NewSenderService(logger.NewNoop(), srv.transport("no-reply@myai.local"))

	body := []byte(`{"request_id":"REQ-1","full_name":"Jane Doe","email":"jane@example.com","urgency":"High"}`)
	require.NoError(t, svc.SendDoctorRequestConfirmation(context.Background(), body))

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, "no-reply@myai.local", srv.envelope)
	assert.Contains(t, srv.data, "REQ-1")
}

func TestSenderService_InvalidFrom(t *testing.T) {
	tr := new(MockTransport)
	tr.On("From").Return("MyAI <no-reply")
	svc := NewSenderService(logger.NewNoop(), tr)

	err := svc.SendPasswordReset(context.Background(), "alice@example.com", "http://x")
	assert.ErrorContains(t, err, "parse sender address")
	tr.AssertNotCalled(t, "Connect", mock.Anything)
}
