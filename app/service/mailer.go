package service

import (
	"fmt"

	"github.com/vibast-solutions/ms-go-social/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends account-lifecycle emails. Delivery is best effort; there is
// no read-back of delivery status.
type Mailer interface {
	SendActivationEmail(to, name, token string) error
	SendEmailChangeEmail(to, name, token string) error
}

type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:    cfg.SMTP.From,
		baseURL: cfg.BaseURL,
	}
}

func (m *SMTPMailer) SendActivationEmail(to, name, token string) error {
	link := fmt.Sprintf("%s/auth/activate?token=%s", m.baseURL, token)
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome! Please activate your account by opening the link below:\n\n%s\n\nThe link is valid for 24 hours. If you did not sign up, ignore this email.\n",
		name, link,
	)
	return m.send(to, "Activate your account", body)
}

func (m *SMTPMailer) SendEmailChangeEmail(to, name, token string) error {
	link := fmt.Sprintf("%s/auth/update-email?token=%s", m.baseURL, token)
	body := fmt.Sprintf(
		"Hi %s,\n\nConfirm your new email address by opening the link below:\n\n%s\n\nThe link is valid for 1 hour. If you did not request this change, ignore this email.\n",
		name, link,
	)
	return m.send(to, "Confirm your new email address", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
