package config

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP. A zero-config mailer (no SMTP
// host) is disabled and every send becomes a no-op.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *Config) *Mailer {
	if cfg.SMTPHost == "" {
		return &Mailer{}
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

// SendSubscriptionActivated notifies a subscriber that payment completed and
// their listing is live.
func (m *Mailer) SendSubscriptionActivated(to, listingName string) error {
	if !m.Enabled() {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your subscription for %s is active", listingName))
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Good news! Your subscription for <strong>%s</strong> is now active.</p>"+
			"<p>You can manage your listing from your dashboard at any time.</p>", listingName))

	return m.dialer.DialAndSend(msg)
}
