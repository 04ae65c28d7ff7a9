package mailer

import (
	"net/smtp"

	"github.com/perfectlysalon/admin-api/internal/config"
)

type EmailSender interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	addr string
	from string
}

func New(cfg *config.Config) EmailSender {
	return &smtpMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		from: cfg.SMTPFrom,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	return smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg))
}
