// Package notify composes and delivers the reminder and the operator
// notifications. Composition is shared; delivery is pluggable so a dry run
// prints exactly what would have been mailed.
package notify

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/config"

	"go.uber.org/zap"
)

// ErrSendMail wraps every delivery failure.
var ErrSendMail = errors.New("failed to send email")

// Notifier is what the reminder pipeline talks to.
type Notifier interface {
	// NotifyAdmin sends an operator message.
	NotifyAdmin(ctx context.Context, message string) error
	// Send sends the reminder to emails, greeting names.
	Send(ctx context.Context, names []string, emails []string) error
}

// Transport delivers a composed message.
type Transport interface {
	Deliver(ctx context.Context, m Message) error
}

// Service implements Notifier on top of a Composer and a Transport.
type Service struct {
	composer  *Composer
	transport Transport
	logger    *zap.Logger
}

// New creates a Service.
func New(composer *Composer, transport Transport, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{composer: composer, transport: transport, logger: logger}
}

// FromConfig wires a Service for the maintenance day. With email delivery
// off, messages are written to out instead of being mailed.
func FromConfig(cfg *config.Config, day time.Time, out io.Writer, logger *zap.Logger) *Service {
	composer := &Composer{
		From:           cfg.Email.Username,
		ReplyTo:        cfg.Email.ReplyTo,
		Admin:          cfg.Email.Admin,
		GardenContacts: cfg.Email.GardenContacts,
		Day:            day,
		AttachCalendar: cfg.Email.AttachCalendar,
	}

	var transport Transport
	if cfg.Email.On {
		transport = &SMTPTransport{
			Host:     cfg.Email.Server,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			Timeout:  cfg.GetSMTPTimeout(),
		}
	} else {
		transport = &ConsoleTransport{Out: out}
	}
	return New(composer, transport, logger)
}

// NotifyAdmin composes an operator message and delivers it.
func (s *Service) NotifyAdmin(ctx context.Context, message string) error {
	s.logger.Info("Notifying admin", zap.String("message", message))
	return s.transport.Deliver(ctx, s.composer.AdminMessage(message))
}

// Send composes the reminder and delivers it.
func (s *Service) Send(ctx context.Context, names []string, emails []string) error {
	m, err := s.composer.Reminder(names, emails)
	if err != nil {
		return err
	}
	if err := s.transport.Deliver(ctx, m); err != nil {
		return err
	}
	s.logger.Info("Reminder sent",
		zap.Strings("names", names),
		zap.Int("recipients", len(emails)))
	return nil
}
