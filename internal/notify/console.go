package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#8BC34A")).
	Padding(0, 1)

// ConsoleTransport writes messages instead of mailing them.
type ConsoleTransport struct {
	Out io.Writer
}

// Deliver prints the headers in a frame, followed by the body.
func (c *ConsoleTransport) Deliver(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	header := []string{
		"From: " + m.From,
		"To: " + strings.Join(m.To, ", "),
	}
	if len(m.Bcc) > 0 {
		header = append(header, "Bcc: "+strings.Join(m.Bcc, ", "))
	}
	if m.ReplyTo != "" {
		header = append(header, "Reply-To: "+m.ReplyTo)
	}
	header = append(header, "Subject: "+m.Subject)
	if len(m.Calendar) > 0 {
		header = append(header, fmt.Sprintf("Attachment: %s (%d bytes)", calendarFileName, len(m.Calendar)))
	}

	if _, err := fmt.Fprintf(out, "%s\n%s\n", headerStyle.Render(strings.Join(header, "\n")), m.Body); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}
