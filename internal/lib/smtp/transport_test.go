package smtp

import (
	"bufio"
	"context"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felix-musau/myai/internal/config"
	"github.com/felix-musau/myai/internal/lib/logger"
)

// fakeServer минимальный SMTP-сервер без STARTTLS и AUTH.
type fakeServer struct {
	ln net.Listener

	mu   sync.Mutex
	from string
	rcpt []string
	data string
}

func startFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeServer{ln: ln}
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

func (s *fakeServer) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	write := func(line string) {
		_, _ = io.WriteString(conn, line+"\r\n")
	}

	write("220 localhost ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)
		upper := strings.ToUpper(cmd)
		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			write("250-localhost")
			write("250 8BITMIME")
		case strings.HasPrefix(upper, "MAIL FROM:"):
			s.mu.Lock()
			s.from = envelopeAddr(cmd[len("MAIL FROM:"):])
			s.mu.Unlock()
			write("250 OK")
		case strings.HasPrefix(upper, "RCPT TO:"):
			s.mu.Lock()
			s.rcpt = append(s.rcpt, envelopeAddr(cmd[len("RCPT TO:"):]))
			s.mu.Unlock()
			write("250 OK")
		case upper == "DATA":
			write("354 go ahead")
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
			write("250 queued")
		case upper == "QUIT":
			write("221 bye")
			return
		default:
			write("502 not implemented")
		}
	}
}

// envelopeAddr достаёт адрес из "<addr> [параметры ESMTP]".
func envelopeAddr(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "<")
	addr, _, _ := strings.Cut(path, ">")
	return addr
}

func (s *fakeServer) port() string {
	return strconv.Itoa(s.ln.Addr().(*net.TCPAddr).Port)
}

func TestTransport_SendPlain(t *testing.T) {
	srv := startFakeServer(t)
	tr := NewTransport(config.SMTP{
		SMTPHost: "127.0.0.1",
		SMTPPort: srv.port(),
		SMTPFrom: "no-reply@myai.test",
	}, logger.NewNoop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := tr.Connect(ctx)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Mail(tr.From()))
	require.NoError(t, client.Rcpt("alice@example.com"))
	wc, err := client.Data()
	require.NoError(t, err)
	_, err = io.WriteString(wc, "Subject: hi\r\n\r\nhello\r\n")
	require.NoError(t, err)
	require.NoError(t, wc.Close())
	require.NoError(t, client.Quit())

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, "no-reply@myai.test", srv.from)
	assert.Equal(t, []string{"alice@example.com"}, srv.rcpt)
	assert.Contains(t, srv.data, "hello")
}

func TestEnvelopeAddr(t *testing.T) {
	assert.Equal(t, "no-reply@myai.test", envelopeAddr("<no-reply@myai.test> BODY=8BITMIME"))
	assert.Equal(t, "alice@example.com", envelopeAddr(" <alice@example.com>"))
}

func TestTransport_RequireTLS(t *testing.T) {
	srv := startFakeServer(t)
	tr := NewTransport(config.SMTP{
		SMTPHost:       "127.0.0.1",
		SMTPPort:       srv.port(),
		SMTPRequireTLS: true,
	}, logger.NewNoop())

	client, err := tr.Connect(context.Background())
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrTLSRequired)
}

func TestTransport_DialFailure(t *testing.T) {
	tr := NewTransport(config.SMTP{SMTPHost: "127.0.0.1", SMTPPort: "1"}, logger.NewNoop())

	client, err := tr.Connect(context.Background())
	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestTransport_From(t *testing.T) {
	assert.Equal(t, "from@x", NewTransport(config.SMTP{SMTPFrom: "from@x", SMTPUser: "user@x"}, nil).From())
	assert.Equal(t, "user@x", NewTransport(config.SMTP{SMTPUser: "user@x"}, nil).From())
}
