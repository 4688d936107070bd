package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/config"
)

// Mailer delivers a single message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewMailer selects the SMTP mailer when an address is configured and a
// log-only mailer otherwise.
func NewMailer(cfg config.MailerConfig, logger *zap.Logger) Mailer {
	if strings.TrimSpace(cfg.Addr) == "" {
		logger.Warn("MAILER_ADDR not provided; notifications will be logged only")
		return &logMailer{logger: logger}
	}
	return &smtpMailer{cfg: cfg}
}

type smtpMailer struct {
	cfg config.MailerConfig
}

func (m *smtpMailer) Send(_ context.Context, to, subject, body string) error {
	host := m.cfg.Addr
	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}

	var authMech smtp.Auth
	if m.cfg.Username != "" {
		authMech = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	return smtp.SendMail(m.cfg.Addr, authMech, m.cfg.From, []string{to}, []byte(msg))
}

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Info("mail send skipped",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
