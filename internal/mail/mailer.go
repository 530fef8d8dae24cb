// Package mail sends the account verification email over SMTP.
package mail

import (
	"fmt"

	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"

	"github.com/pathsapp/backend/internal/config"
)

// Mailer is the outbound-mail surface handlers depend on; tests inject a
// stub instead of a live SMTP connection.
type Mailer interface {
	SendVerification(to, token string) error
}

// SMTP is the gomail-backed Mailer.
type SMTP struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

var _ Mailer = (*SMTP)(nil)

// NewSMTP builds the mailer from the EMAIL_* configuration.
func NewSMTP(cfg *config.Config) *SMTP {
	d := gomail.NewDialer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword)
	d.SSL = cfg.EmailSecure
	return &SMTP{dialer: d, from: cfg.EmailUser, baseURL: cfg.BaseURL}
}

// SendVerification mails the click-to-verify link for token.
func (m *SMTP) SendVerification(to, token string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "No Reply")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify account")
	msg.SetBody("text/plain", verificationBody(m.baseURL, token))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	log.Debug().Str("to", to).Msg("verification mail sent")
	return nil
}

// Verify dials the SMTP server once so a bad mail configuration fails at
// startup instead of on the first registration.
func (m *SMTP) Verify() error {
	closer, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	return closer.Close()
}

func verificationBody(baseURL, token string) string {
	return fmt.Sprintf("To verify click %s/register/verify-email?token=%s", baseURL, token)
}
