// Package service contains stuff related to the background processing
// of the application
package service

import (
	"fmt"

	"vidshare/backend/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass),
		from:   cfg.MailFrom,
	}
}

func (m *Mailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	return m.dialer.DialAndSend(msg)
}

// SignUpTemplate is the body of the account activation mail.
func SignUpTemplate(name, activationLink string) string {
	return fmt.Sprintf(`
  <h1>Welcome to Our Service, %s!</h1>
  <p>Thank you for registering with us. We are excited to have you on board!</p>
  <p>Please activate your account by clicking the link below:</p>
  <p><a href="%s">Activate Your Account</a></p>
  <p>If you have any questions, feel free to reach out to our support team.</p>
  <p>Best regards,<br>Your Service Team</p>
`, name, activationLink)
}

// ResetPasswordTemplate is the body of the password reset mail.
func ResetPasswordTemplate(resetLink string) string {
	return fmt.Sprintf(`
  <h1>Password Reset Request</h1>
  <p>To reset your password, click the link below:</p>
  <a href="%s">Reset Password</a>
  <p>If you did not request this, please ignore this email.</p>
`, resetLink)
}
