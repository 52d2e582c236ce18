package mail

import (
	"bytes"
	"errors"
	"net/smtp"
	"testing"

	"fun123/pkg/config"
	"fun123/pkg/logger"
	"fun123/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_AllTemplates(t *testing.T) {
	r, err := NewRenderer("https://fun123.example/", "noreply@fun123.local")
	require.NoError(t, err)

	for _, name := range []string{
		queue.TemplateConfirm,
		queue.TemplateChangeEmail,
		queue.TemplateChangePassword,
		queue.TemplateResetPassword,
	} {
		msg, err := r.Render(queue.MailTask{
			To:       "john@example.com",
			Subject:  "[Fun123] Hello",
			Template: name,
			Username: "john",
			Token:    "a.b+c",
		})
		require.NoError(t, err, name)
		assert.Contains(t, msg.Body, "Dear john,", name)
		assert.Contains(t, msg.Body, "https://fun123.example/", name)
		assert.Contains(t, msg.Body, "token=a.b%2Bc", name)
		assert.Equal(t, "noreply@fun123.local", msg.From)
	}
}

func TestRenderer_Rejects(t *testing.T) {
	r, err := NewRenderer("http://localhost:8080", "noreply@fun123.local")
	require.NoError(t, err)

	_, err = r.Render(queue.MailTask{To: "john@example.com", Template: "auth/email/unknown"})
	assert.Error(t, err)

	_, err = r.Render(queue.MailTask{Template: queue.TemplateConfirm})
	assert.Error(t, err)
}

func TestMessage_Bytes(t *testing.T) {
	m := &Message{From: "a@x", To: "b@x", Subject: "Hi", Body: "line1\nline2"}
	raw := string(m.Bytes())

	assert.Contains(t, raw, "Subject: Hi\r\n")
	assert.Contains(t, raw, "\r\n\r\nline1\r\nline2")
}

func TestHandler(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	r, err := NewRenderer("http://localhost:8080", "noreply@fun123.local")
	require.NoError(t, err)

	s := NewSender(&config.Config{MailServer: "smtp.example", MailPort: "25"}, log)
	var sentTo []string
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.example:25", addr)
		sentTo = append(sentTo, to...)
		return nil
	}

	handle := Handler(r, s, log)

	require.NoError(t, handle(queue.MailTask{To: "john@example.com", Template: queue.TemplateConfirm, Token: "t"}))
	assert.Equal(t, []string{"john@example.com"}, sentTo)

	// unknown templates are dropped, not retried
	require.NoError(t, handle(queue.MailTask{To: "john@example.com", Template: "nope"}))
	assert.Len(t, sentTo, 1)

	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	assert.Error(t, handle(queue.MailTask{To: "john@example.com", Template: queue.TemplateConfirm, Token: "t"}))
}

func TestSender_NoServerLogsOnly(t *testing.T) {
	var buf bytes.Buffer
	s := NewSender(&config.Config{}, logger.NewWithWriter(&buf))

	require.NoError(t, s.Send(&Message{To: "john@example.com", Subject: "Hi"}))
	assert.Contains(t, buf.String(), "would send")
}
