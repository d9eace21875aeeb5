package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"reviewhub/internal/config"
)

// Mailer is the delivery capability the auth flow depends on. A failed
// send must be reported: signup treats delivery failure as its own
// failure rather than swallowing it.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		host := cfg.SMTPAddr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, host)
	}
	return &SMTPMailer{addr: cfg.SMTPAddr, from: cfg.EmailFrom, auth: auth}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes outbound mail to the log instead of delivering it.
// Used in development when no SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(to, subject, body string) error {
	m.logger.Info("outbound mail", "to", to, "subject", subject, "body", body)
	return nil
}

// NewFromConfig picks the SMTP mailer when a relay is configured and
// falls back to the log mailer otherwise.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) Mailer {
	if cfg.SMTPAddr != "" {
		return NewSMTPMailer(cfg)
	}
	logger.Warn("SMTP_ADDR not set, outbound mail will only be logged")
	return NewLogMailer(logger)
}
