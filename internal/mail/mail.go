// Package mail sends transactional email over plain SMTP. Sending is
// fire-and-forget: delivery failures are logged, never surfaced to the
// request that triggered them.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/parsgolf/server/internal/config"

	"github.com/sirupsen/logrus"
)

type Mailer struct {
	cfg config.Mail
	log *logrus.Entry
}

func New(l *logrus.Logger, cfg config.Mail) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: l.WithField("from", "mail"),
	}
}

// SendPasswordReset mails a reset link to the user. No-op when mail is
// disabled in the config.
func (m *Mailer) SendPasswordReset(email, username, link string) {
	if !m.cfg.Enabled {
		m.log.WithField("to", email).Debug("mail disabled, reset link not sent")
		return
	}
	subject := "Password reset"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Someone requested a password reset for your account. "+
			"If that was you, follow the link below. The link expires shortly.\r\n\r\n"+
			"%s\r\n\r\n"+
			"If you did not request this, ignore this message.\r\n",
		username, link)
	go m.send(email, subject, body)
}

func (m *Mailer) send(to, subject, body string) {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	msg := strings.Join([]string{
		"From: " + m.cfg.Sender,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	err := smtp.SendMail(addr, auth, m.cfg.Sender, []string{to}, []byte(msg))
	if err != nil {
		m.log.WithField("to", to).WithError(err).Error("send mail")
		return
	}
	m.log.WithField("to", to).Info("mail sent")
}
