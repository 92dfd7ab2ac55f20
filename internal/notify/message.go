package notify

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/schedule"
)

// AdminSubject is the subject of every operator message.
const AdminSubject = "Groen email script issue"

// Message is a composed email, independent of how it is delivered.
type Message struct {
	From     string
	ReplyTo  string
	To       []string
	Bcc      []string
	Subject  string
	Body     string
	Calendar []byte // optional text/calendar attachment
}

// Composer builds the admin and reminder messages.
type Composer struct {
	From           string
	ReplyTo        string
	Admin          string
	GardenContacts []string
	Day            time.Time
	AttachCalendar bool

	// Now stamps the calendar attachment; nil means time.Now.
	Now func() time.Time
}

// AdminMessage builds an operator message.
func (c *Composer) AdminMessage(body string) Message {
	var to []string
	if c.Admin != "" {
		to = []string{c.Admin}
	}
	return Message{
		From:    c.From,
		ReplyTo: c.ReplyTo,
		To:      to,
		Subject: AdminSubject,
		Body:    body + "\n",
	}
}

// ReminderSubject is the reminder subject for day.
func ReminderSubject(day time.Time) string {
	return "Groen onderhoud herinnering voor " + schedule.ShortDate(day)
}

// Reminder builds the reminder for names, addressed to emails and blind
// copied to the admin.
func (c *Composer) Reminder(names []string, emails []string) (Message, error) {
	body, err := ReminderBody(names, c.GardenContacts, c.ReplyTo)
	if err != nil {
		return Message{}, err
	}

	m := Message{
		From:    c.From,
		ReplyTo: c.ReplyTo,
		To:      append([]string(nil), emails...),
		Subject: ReminderSubject(c.Day),
		Body:    body,
	}
	if c.Admin != "" {
		m.Bcc = []string{c.Admin}
	}

	if c.AttachCalendar {
		now := time.Now
		if c.Now != nil {
			now = c.Now
		}
		ics, err := MaintenanceEvent(c.Day, names, now())
		if err != nil {
			return Message{}, err
		}
		m.Calendar = ics
	}
	return m, nil
}

var reminderTmpl = template.Must(template.New("reminder").Parse(`Beste {{.Names}},

Voor aanstaand weekend sta je aangemeld voor het onderhoud aan de binnentuin.
Hier kan de sleutel opgehaald worden:
{{range .Contacts}}* {{.}}
{{end}}
Stem het aub tijdig af zodat je niet voor een dichte deur staat.

Bekijk wat er gedaan kan worden. Denk aan onkruid wieden, kanten steken, azijn spuiten, maaien, mesten, sproeien (indien je aangesloten bent op de binnentuin)

Zorg er aub voor dat:
* het gereedschap weer schoon en opgeruimd terug in het schuurtje komt.
* de accu's thuis opgeladen worden en weer vol terug in het schuurtje komen te liggen.

Mocht het onverhoopt niet door kunnen gaan, regel even iemand anders of laat het de groencommissie even weten.

Groencommissie email: {{.ReplyTo}}
`))

// ReminderBody renders the reminder text.
func ReminderBody(names, gardenContacts []string, replyTo string) (string, error) {
	contacts := make([]string, 0, len(gardenContacts))
	for _, c := range gardenContacts {
		if c = strings.TrimSpace(c); c != "" {
			contacts = append(contacts, c)
		}
	}

	var buf bytes.Buffer
	err := reminderTmpl.Execute(&buf, struct {
		Names    string
		Contacts []string
		ReplyTo  string
	}{
		Names:    strings.Join(names, ", "),
		Contacts: contacts,
		ReplyTo:  replyTo,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render reminder: %w", err)
	}
	return buf.String(), nil
}
