package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends a plain-text email. Delivery is synchronous and best effort;
// callers decide whether a failure matters.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer implements Mailer over SMTP
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// DisabledMailer drops messages. Used when no SMTP server is configured so
// the dispatcher's email channel degrades to a no-op.
type DisabledMailer struct{}

// Send discards the message
func (DisabledMailer) Send(to, subject, body string) error { return nil }

// Send dispatches a plain-text message
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
