package mail

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/config"
)

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m := NewLogMailer(logger)
	err := m.Send("alice@example.com", "Confirmation code", "Your confirmation code: abc123")

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "alice@example.com")
	assert.Contains(t, buf.String(), "abc123")
}

func TestNewFromConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("NoSMTPAddrFallsBackToLog", func(t *testing.T) {
		m := NewFromConfig(&config.Config{}, logger)
		_, ok := m.(*LogMailer)
		assert.True(t, ok)
	})

	t.Run("SMTPAddrSelectsSMTP", func(t *testing.T) {
		m := NewFromConfig(&config.Config{SMTPAddr: "smtp.example.com:587"}, logger)
		_, ok := m.(*SMTPMailer)
		assert.True(t, ok)
	})
}
