package notify

import (
	"bytes"
	"context"
	"errors"
	"time"

	mail "gopkg.in/mail.v2"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
)

var ErrSMTPNotConfigured = errors.New("smtp not configured")

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

type Mail struct {
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	d := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.Timeout = 10 * time.Second

	return &SMTPMailer{dialer: d, from: cfg.SMTPFrom}
}

func (s *SMTPMailer) Send(ctx context.Context, m Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(buildMessage(s.from, m))
}

func buildMessage(from string, m Mail) *mail.Message {
	msg := mail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)

	switch {
	case m.HTML != "" && m.Text != "":
		msg.SetBody("text/plain", m.Text)
		msg.AddAlternative("text/html", m.HTML)
	case m.HTML != "":
		msg.SetBody("text/html", m.HTML)
	default:
		msg.SetBody("text/plain", m.Text)
	}

	for _, a := range m.Attachments {
		msg.AttachReader(a.Name, bytes.NewReader(a.Data), mail.SetHeader(map[string][]string{
			"Content-Type": {a.ContentType},
		}))
	}
	return msg
}
