package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/fenixclinic/clinic-api/internal/config"
)

// Service sends transactional mail. Callers treat every send as best
// effort: a failure is logged by the caller, never surfaced to the client.
type Service interface {
	SendWelcome(ctx context.Context, to string, firstName string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewService returns an SMTP-backed sender, or a no-op one when mail is
// disabled in the configuration.
func NewService(cfg config.SMTPConfig) Service {
	if !cfg.Enabled {
		return &noopService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendWelcome(ctx context.Context, to string, firstName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to Fenix Clinic")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour account has been created. You can now sign in with this email address.\n\nFenix Clinic",
		firstName,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

type noopService struct{}

func (n *noopService) SendWelcome(ctx context.Context, to string, firstName string) error {
	return nil
}
