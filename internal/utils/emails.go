package utils

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP. A Mailer with no username is
// disabled and silently drops messages.
type Mailer struct {
	host     string
	port     int
	username string
	password string
}

func NewMailer(host string, port int, username, password string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password}
}

// Send delivers a single HTML email. Failures are logged and returned; the
// caller decides whether delivery is best-effort.
func (m *Mailer) Send(to string, subject string, body string) error {
	if m.username == "" {
		log.Debug().Str("to", to).Msg("mailer disabled, dropping email")
		return nil
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.username)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(mailer); err != nil {
		log.Warn().Err(err).Str("to", to).Msg("failed to send email")
		return err
	}

	log.Info().Str("to", to).Msg("email sent")
	return nil
}
