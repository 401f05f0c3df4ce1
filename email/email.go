package email

import (
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// Sender delivers plain-text mail. The core only cares about success or
// failure, never delivery status beyond that.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends through a standard SMTP relay.
type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewSMTPSenderFromEnv builds a sender from SMTP_HOST, SMTP_PORT, SMTP_USER
// and SMTP_PASS.
func NewSMTPSenderFromEnv() *SMTPSender {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	user := os.Getenv("SMTP_USER")
	return &SMTPSender{
		Host: os.Getenv("SMTP_HOST"),
		Port: port,
		User: user,
		Pass: os.Getenv("SMTP_PASS"),
		From: user,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	return d.DialAndSend(m)
}
