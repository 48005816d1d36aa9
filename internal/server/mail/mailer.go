// Package mail is the outbound notification sink. Delivery goes through
// SendGrid; without an API key the service degrades to a logged no-op so a
// missing key never takes the process down (MailStrict restores fail-fast
// startup for deployments that want it).
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/atfurman/taskapp/internal/logging"
	"github.com/atfurman/taskapp/internal/server/config"
)

var ErrMissingAPIKey = errors.New("sendgrid api key is not configured")

type Service struct {
	client *sendgrid.Client
	from   *sgmail.Email
	logger logging.Logger
}

func NewService(cfg *config.Config, logger logging.Logger) (*Service, error) {

	s := &Service{
		from:   sgmail.NewEmail("Task App", cfg.MailFromAddress),
		logger: logger.With("module", "mail"),
	}

	if cfg.SendGridAPIKey == "" {
		if cfg.MailStrict {
			return nil, ErrMissingAPIKey
		}
		s.logger.Warn(context.Background(), "no sendgrid api key, mail disabled")
		return s, nil
	}

	s.client = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	return s, nil
}

func (s *Service) SendWelcome(ctx context.Context, email, name string) error {
	subject := "Welcome to the Task App"
	body := fmt.Sprintf("Welcome to the app, %s. Let me know how you like it.", name)
	return s.send(ctx, email, name, subject, body)
}

func (s *Service) SendCancellation(ctx context.Context, email, name string) error {
	subject := "Leaving so soon?"
	body := fmt.Sprintf("%s, we are sorry to see you go. If you can, please take the time to tell us what we could have done better.", name)
	return s.send(ctx, email, name, subject, body)
}

func (s *Service) send(ctx context.Context, email, name, subject, body string) error {

	if s.client == nil {
		s.logger.Debug(ctx, "mail disabled, skipping", "subject", subject, "to", email)
		return nil
	}

	message := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail(name, email), body, "")

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}

	return nil
}
