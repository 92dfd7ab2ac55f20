package notify

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

const calendarFileName = "groen-onderhoud.ics"

// SMTPTransport delivers over SMTP with implicit TLS and PLAIN auth.
type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration

	// Options are appended to the client options.
	Options []mail.Option
}

// Deliver sends m. Any failure wraps ErrSendMail.
func (t *SMTPTransport) Deliver(ctx context.Context, m Message) error {
	msg, err := buildMsg(m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendMail, err)
	}

	opts := []mail.Option{
		mail.WithPort(t.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.Username),
		mail.WithPassword(t.Password),
	}
	if t.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(t.Timeout))
	}
	opts = append(opts, t.Options...)

	client, err := mail.NewClient(t.Host, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendMail, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrSendMail, err)
	}
	return nil
}

// buildMsg converts a Message into a go-mail message.
func buildMsg(m Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", m.From, err)
	}
	if len(m.To) == 0 {
		return nil, fmt.Errorf("message %q has no recipients", m.Subject)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if len(m.Bcc) > 0 {
		if err := msg.Bcc(m.Bcc...); err != nil {
			return nil, fmt.Errorf("invalid bcc recipient: %w", err)
		}
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address %q: %w", m.ReplyTo, err)
		}
	}
	msg.Subject(m.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, m.Body)

	if len(m.Calendar) > 0 {
		msg.AttachReadSeeker(calendarFileName, bytes.NewReader(m.Calendar),
			mail.WithFileContentType(mail.ContentType("text/calendar")))
	}
	return msg, nil
}
