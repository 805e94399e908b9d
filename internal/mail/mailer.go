// Package mail sends the transactional emails of the trip planner: the
// trip-confirmation message to the owner and the invitation fan-out to
// participants. Delivery is plain SMTP; an unconfigured mailer silently
// drops messages so local development works without an SMTP server.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/tcosta/planner/internal/config"
)

// Address is a display name plus an email address.
type Address struct {
	Name    string
	Address string
}

// Message is one outbound email. Body is an HTML document fragment
// containing exactly one action link.
type Message struct {
	From    Address
	To      Address
	Subject string
	Body    string
}

// SMTPMailer delivers messages over SMTP with PLAIN auth.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer constructs an SMTPMailer from the given settings.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// IsConfigured reports whether enough SMTP settings are present to attempt
// delivery. Send is a no-op when this returns false.
func (m *SMTPMailer) IsConfigured() bool {
	return m.cfg.Host != "" && m.cfg.FromAddress != ""
}

// Send delivers a single message. The ctx parameter is accepted for
// interface symmetry with the rest of the codebase; net/smtp has no
// context-aware API, so cancellation is bounded by the SMTP dial timeout.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.IsConfigured() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	raw := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		msg.From.Name, msg.From.Address, formatRecipient(msg.To), msg.Subject, msg.Body)

	if err := smtp.SendMail(addr, auth, msg.From.Address, []string{msg.To.Address}, []byte(raw)); err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: %w", err)
	}
	return nil
}

// formatRecipient renders the To header value, with or without a display name.
func formatRecipient(to Address) string {
	if to.Name == "" {
		return to.Address
	}
	return fmt.Sprintf("%s <%s>", to.Name, to.Address)
}
