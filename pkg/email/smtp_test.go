package email

import (
	"context"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelay is a minimal SMTP server without STARTTLS or AUTH.
type fakeRelay struct {
	ln         net.Listener
	rejectRcpt bool

	mu   sync.Mutex
	from string
	rcpt []string
	data string
}

func startFakeRelay(t *testing.T, rejectRcpt bool) *fakeRelay {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	r := &fakeRelay{ln: ln, rejectRcpt: rejectRcpt}
	t.Cleanup(func() { ln.Close() })
	go r.serve()
	return r
}

func (r *fakeRelay) hostPort() (string, string) {
	host, port, _ := net.SplitHostPort(r.ln.Addr().String())
	return host, port
}

func (r *fakeRelay) serve() {
	for {
		conn, err := r.ln.Accept()
		if err != nil {
			return
		}
		go r.handle(conn)
	}
}

func (r *fakeRelay) handle(conn net.Conn) {
	defer conn.Close()
	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 fake ESMTP")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			_ = tp.PrintfLine("250-fake")
			_ = tp.PrintfLine("250 8BITMIME")
		case "MAIL":
			r.mu.Lock()
			r.from = line
			r.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "RCPT":
			if r.rejectRcpt {
				_ = tp.PrintfLine("550 5.1.1 mailbox unavailable")
				continue
			}
			r.mu.Lock()
			r.rcpt = append(r.rcpt, line)
			r.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 go ahead")
			lines, err := tp.ReadDotLines()
			if err != nil {
				return
			}
			r.mu.Lock()
			r.data = strings.Join(lines, "\n")
			r.mu.Unlock()
			_ = tp.PrintfLine("250 queued")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("250 OK")
		}
	}
}

func testMessage() *Message {
	return &Message{
		From:    Recipient("LOGIFIED SOLUTIONS", "owner@example.com"),
		To:      []string{"owner@example.com"},
		ReplyTo: "jo@x.com",
		Subject: "New Inquiry from Jo - LOGIFIED SOLUTIONS",
		HTML:    "<p>Need a quote</p>",
		Text:    "Need a quote",
	}
}

func TestSMTPSender_Send(t *testing.T) {
	relay := startFakeRelay(t, false)
	host, port := relay.hostPort()

	s := NewSMTPSender(SMTPConfig{Host: host, Port: port, Username: "owner@example.com", Password: "secret"})
	s.now = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Send(ctx, testMessage()))

	relay.mu.Lock()
	defer relay.mu.Unlock()
	assert.Contains(t, relay.from, "<owner@example.com>")
	require.Len(t, relay.rcpt, 1)
	assert.Contains(t, relay.rcpt[0], "<owner@example.com>")
	assert.Contains(t, relay.data, "Reply-To: jo@x.com")
	assert.Contains(t, relay.data, "multipart/alternative")
	assert.Contains(t, relay.data, "Need a quote")
}

func TestSMTPSender_SendRejected(t *testing.T) {
	relay := startFakeRelay(t, true)
	host, port := relay.hostPort()

	s := NewSMTPSender(SMTPConfig{Host: host, Port: port, Username: "owner@example.com", Password: "secret"})
	err := s.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mailbox unavailable")
}

func TestSMTPSender_Verify(t *testing.T) {
	relay := startFakeRelay(t, false)
	host, port := relay.hostPort()

	s := NewSMTPSender(SMTPConfig{Host: host, Port: port, Username: "u", Password: "p"})
	assert.NoError(t, s.Verify(context.Background()))
}

func TestSMTPSender_NotConfigured(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.gmail.com", Port: "587"})
	assert.False(t, s.IsConfigured())
	assert.ErrorIs(t, s.Send(context.Background(), testMessage()), ErrNotConfigured)
	assert.ErrorIs(t, s.Verify(context.Background()), ErrNotConfigured)
}

func TestSMTPSender_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, port, _ := net.SplitHostPort(ln.Addr().String())
	ln.Close()

	s := NewSMTPSender(SMTPConfig{Host: host, Port: port, Username: "u", Password: "p"})
	err = s.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp dial")
}

func TestBuildMIME(t *testing.T) {
	msg := testMessage()
	msg.Subject = "New Inquiry from Zoë"

	raw, err := buildMIME(msg, time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "From: \"LOGIFIED SOLUTIONS\" <owner@example.com>\r\n")
	assert.Contains(t, out, "Subject: =?utf-8?q?")
	assert.Contains(t, out, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, out, "Content-Type: text/html; charset=UTF-8")
	assert.Less(t, strings.Index(out, "text/plain"), strings.Index(out, "text/html"))
}

func TestMessageValidate(t *testing.T) {
	msg := testMessage()
	msg.To = nil
	assert.ErrorIs(t, msg.validate(), ErrNoRecipient)

	msg = testMessage()
	msg.Subject = ""
	assert.ErrorIs(t, msg.validate(), ErrNoSubject)
}
