package utils

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/rs/zerolog/log"
)

// Mailer sends plain-text mail. The SMTP implementation is used in
// production; the console one when SMTP is not configured and in tests.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: os.Getenv("SMTP_FROM"),
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body + "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}

// ConsoleMailer logs instead of sending. Bodies may carry OTP codes, so it
// only logs recipient and subject.
type ConsoleMailer struct{}

func (ConsoleMailer) Send(to, subject, body string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("mail (console)")
	return nil
}

// NewMailerFromEnv picks SMTP when configured, console otherwise.
func NewMailerFromEnv() Mailer {
	if os.Getenv("SMTP_HOST") != "" {
		return NewSMTPMailer()
	}
	return ConsoleMailer{}
}
