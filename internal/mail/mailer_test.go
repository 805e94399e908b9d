package mail_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tcosta/planner/internal/config"
	"github.com/tcosta/planner/internal/mail"
)

func TestSMTPMailer_IsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SMTPConfig
		want bool
	}{
		{name: "empty", cfg: config.SMTPConfig{}, want: false},
		{name: "host only", cfg: config.SMTPConfig{Host: "smtp.example.com"}, want: false},
		{name: "from only", cfg: config.SMTPConfig{FromAddress: "noreply@example.com"}, want: false},
		{
			name: "host and from",
			cfg:  config.SMTPConfig{Host: "smtp.example.com", FromAddress: "noreply@example.com"},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mail.NewSMTPMailer(tt.cfg).IsConfigured())
		})
	}
}

// TestSMTPMailer_Send_Unconfigured verifies that sending through an
// unconfigured mailer is a silent no-op: local development works without an
// SMTP server and trip creation never fails on mail.
func TestSMTPMailer_Send_Unconfigured(t *testing.T) {
	m := mail.NewSMTPMailer(config.SMTPConfig{})

	err := m.Send(context.Background(), mail.Message{
		From:    mail.Address{Name: "Trip Planner", Address: "noreply@example.com"},
		To:      mail.Address{Address: "ana@example.com"},
		Subject: "Confirm your trip",
		Body:    "<p>hi</p>",
	})

	assert.NoError(t, err)
}

func TestSMTPMailer_Send_CancelledContext(t *testing.T) {
	m := mail.NewSMTPMailer(config.SMTPConfig{
		Host:        "smtp.example.com",
		Port:        "2525",
		FromAddress: "noreply@example.com",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, mail.Message{To: mail.Address{Address: "ana@example.com"}})

	assert.ErrorIs(t, err, context.Canceled)
}
