// Package mail renders queued mail tasks and hands them to an SMTP relay.
package mail

import (
	"bytes"
	"embed"
	"fmt"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"text/template"

	"fun123/pkg/config"
	"fun123/pkg/logger"
	"fun123/pkg/queue"
)

//go:embed templates
var templateFS embed.FS

// links maps each template to the page that consumes its token.
var links = map[string]string{
	queue.TemplateConfirm:        "/confirm",
	queue.TemplateChangeEmail:    "/change-email",
	queue.TemplateChangePassword: "/change-password",
	queue.TemplateResetPassword:  "/reset",
}

type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

type Renderer struct {
	templates map[string]*template.Template
	publicURL string
	sender    string
}

func NewRenderer(publicURL, sender string) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template, len(links)),
		publicURL: strings.TrimRight(publicURL, "/"),
		sender:    sender,
	}
	for name := range links {
		tmpl, err := template.ParseFS(templateFS, "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(task queue.MailTask) (*Message, error) {
	tmpl, ok := r.templates[task.Template]
	if !ok {
		return nil, fmt.Errorf("unknown mail template %q", task.Template)
	}
	if task.To == "" {
		return nil, fmt.Errorf("mail task without recipient")
	}

	link := r.publicURL + links[task.Template] + "?token=" + url.QueryEscape(task.Token)

	var body bytes.Buffer
	err := tmpl.Execute(&body, struct {
		Username string
		Link     string
	}{
		Username: task.Username,
		Link:     link,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", task.Template, err)
	}

	return &Message{
		From:    r.sender,
		To:      task.To,
		Subject: task.Subject,
		Body:    body.String(),
	}, nil
}

// Bytes formats m as a plain-text RFC 5322 message.
func (m *Message) Bytes() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	return b.Bytes()
}

// Sender delivers through SMTP, or only logs messages when no server is
// configured.
type Sender struct {
	addr   string
	auth   smtp.Auth
	logger *logger.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg *config.Config, log *logger.Logger) *Sender {
	s := &Sender{logger: log, send: smtp.SendMail}
	if cfg.MailServer == "" {
		return s
	}
	s.addr = net.JoinHostPort(cfg.MailServer, cfg.MailPort)
	if cfg.MailUsername != "" {
		s.auth = smtp.PlainAuth("", cfg.MailUsername, cfg.MailPassword, cfg.MailServer)
	}
	return s
}

func (s *Sender) Send(m *Message) error {
	if s.addr == "" {
		s.logger.Info("[MAIL] No mail server configured, would send %q to %s", m.Subject, m.To)
		return nil
	}
	if err := s.send(s.addr, s.auth, m.From, []string{m.To}, m.Bytes()); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", m.To, err)
	}
	return nil
}

// Handler renders and sends a task. Render failures are permanent and are
// logged and dropped; send failures are returned so the queue redelivers.
func Handler(r *Renderer, s *Sender, log *logger.Logger) func(queue.MailTask) error {
	return func(task queue.MailTask) error {
		msg, err := r.Render(task)
		if err != nil {
			log.Error("[MAIL] Dropping task for %s: %v", task.To, err)
			return nil
		}
		return s.Send(msg)
	}
}
