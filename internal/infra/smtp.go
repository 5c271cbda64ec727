package infra

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
)

// Mailer sends transactional mail (receipts, low-stock digests) through a
// circuit breaker so a downed SMTP relay never backs up the worker pool.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	breaker  *CircuitBreaker
}

func NewMailer(host string, port int, user, password string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		breaker:  NewCircuitBreaker(3, 2*time.Minute),
	}
}

// Enabled reports whether SMTP is configured at all.
func (m *Mailer) Enabled() bool { return m.host != "" }

func (m *Mailer) Send(to, subject, body string, attachmentName string, attachment []byte) error {
	if !m.Enabled() {
		return nil
	}
	return m.breaker.Call(func() error {
		e := email.NewEmail()
		e.From = m.user
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)
		if len(attachment) > 0 {
			if _, err := e.Attach(bytes.NewReader(attachment), attachmentName, "application/pdf"); err != nil {
				return fmt.Errorf("adjuntar pdf: %w", err)
			}
		}
		addr := fmt.Sprintf("%s:%d", m.host, m.port)
		var auth smtp.Auth
		if m.user != "" {
			auth = smtp.PlainAuth("", m.user, m.password, m.host)
		}
		return e.Send(addr, auth)
	})
}
