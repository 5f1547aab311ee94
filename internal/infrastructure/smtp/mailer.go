package smtp

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/harenatech/harena-api/pkg/config"
)

// Mailer envoi de mails de vérification par SMTP.
// L'envoi est un effet de bord best-effort : l'appelant journalise l'échec et continue.
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer construit le mailer. Un Host vide désactive l'envoi.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled indique si l'envoi est configuré.
func (m *Mailer) Enabled() bool { return m.cfg.Host != "" }

// Send envoie un mail texte simple.
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("envoi mail: %w", err)
	}
	return nil
}
