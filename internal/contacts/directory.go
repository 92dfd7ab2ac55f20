// Package contacts builds the contact directory from spreadsheet rows and
// resolves the free-text names typed into the schedule to email addresses.
package contacts

import (
	"go.uber.org/zap"
)

// Contact is one row of the contacts sheet. ExtraNames lists the other
// residents sharing Email, in whatever form the sheet owner typed them.
type Contact struct {
	PrimaryName string
	Email       string
	ExtraNames  string
}

// Directory maps primary names to contacts. Iteration follows the order in
// which a primary name was first seen; a later row with the same primary name
// replaces the contact but keeps that position.
type Directory struct {
	order    []string
	contacts map[string]Contact
	skipped  int
}

// BuildDirectory parses contact rows of the form
// [name, email, address, extra names?]. Rows with any other field count are
// skipped and logged.
func BuildDirectory(rows [][]string, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Directory{contacts: make(map[string]Contact, len(rows))}
	for i, row := range rows {
		var c Contact
		switch len(row) {
		case 4:
			c = Contact{PrimaryName: row[0], Email: row[1], ExtraNames: row[3]}
		case 3:
			c = Contact{PrimaryName: row[0], Email: row[1]}
		default:
			d.skipped++
			logger.Warn("Could not process contact row",
				zap.Int("row", i),
				zap.Int("fields", len(row)),
				zap.Strings("line", row))
			continue
		}

		if _, exists := d.contacts[c.PrimaryName]; exists {
			logger.Debug("Duplicate primary name, later row wins", zap.String("name", c.PrimaryName))
		} else {
			d.order = append(d.order, c.PrimaryName)
		}
		d.contacts[c.PrimaryName] = c
	}

	logger.Debug("Contact directory built",
		zap.Int("contacts", len(d.order)),
		zap.Int("skipped", d.skipped))
	return d
}

// Len returns the number of distinct primary names.
func (d *Directory) Len() int {
	return len(d.order)
}

// Skipped returns how many rows could not be processed.
func (d *Directory) Skipped() int {
	return d.skipped
}

// Get returns the contact stored under an exact primary name.
func (d *Directory) Get(primaryName string) (Contact, bool) {
	c, ok := d.contacts[primaryName]
	return c, ok
}

// All returns the contacts in directory order.
func (d *Directory) All() []Contact {
	out := make([]Contact, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.contacts[name])
	}
	return out
}
