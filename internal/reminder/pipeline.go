// Package reminder runs one weekly reminder: find the coming Saturday in the
// schedule, resolve the names on that row, and mail them.
//
// The run either ends silently (nobody scheduled), ends after one operator
// notification (bad schedule data, nobody reachable), or sends the reminder.
// Only a failed fetch or a failed reminder delivery is returned as an error.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/contacts"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/logging"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/mailinglist"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/notify"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/schedule"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/sheets"

	"go.uber.org/zap"
)

// State is where a run ended.
type State string

const (
	StateNoSchedule    State = "no_schedule"     // date not in the schedule
	StateNoNames       State = "no_names"        // row found, no usable names
	StateNoRecipients  State = "no_recipients"   // no name resolved to an address
	StateSent          State = "sent"            // reminder delivered
	StateFetchFailed   State = "fetch_failed"    // a source could not be read
	StateDeliveryError State = "delivery_failed" // reminder delivery failed
)

// MsgNoNames is the admin notification for a row without usable names.
const MsgNoNames = "No names found."

// Result summarizes a run.
type Result struct {
	State  State
	Date   string
	Names  []string
	Emails []string
}

// Options configure a Pipeline.
type Options struct {
	// NamesColumn is the schedule column holding names; 0 means the default.
	NamesColumn int
	// NotifyAmbiguous reports names that matched several contacts.
	NotifyAmbiguous bool
}

// Pipeline wires the schedule and contacts sources to a notifier.
type Pipeline struct {
	schedule sheets.Source
	contacts sheets.Source
	notifier notify.Notifier
	opts     Options
	logger   *zap.Logger
}

// New creates a Pipeline.
func New(scheduleSrc, contactsSrc sheets.Source, notifier notify.Notifier, opts Options, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.NamesColumn <= 0 {
		opts.NamesColumn = schedule.DefaultNamesColumn
	}
	return &Pipeline{
		schedule: scheduleSrc,
		contacts: contactsSrc,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
	}
}

// Run performs one reminder run for the Saturday following now.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (Result, error) {
	return p.RunForDate(ctx, schedule.TargetDate(now))
}

// RunForDate performs one reminder run for a DD-MM date token.
func (p *Pipeline) RunForDate(ctx context.Context, date string) (Result, error) {
	res := Result{Date: date}
	log := logging.Get(p.logger, logging.CategorySchedule).With(zap.String("date", date))

	rows, err := p.schedule.Fetch(ctx)
	if err != nil {
		res.State = StateFetchFailed
		p.notifyAdmin(ctx, fmt.Sprintf("Could not read the schedule: %v", err))
		return res, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	log.Debug("Schedule fetched", zap.Int("rows", len(rows)))

	row, found := schedule.LocateRow(rows, date)
	if !found {
		res.State = StateNoSchedule
		log.Info("Date not found in schedule")
		return res, nil
	}

	field, err := schedule.ExtractNamesField(row, p.opts.NamesColumn)
	if err != nil {
		res.State = StateNoNames
		log.Warn("Names column missing", zap.Error(err))
		p.notifyAdmin(ctx, err.Error())
		return res, nil
	}

	res.Names = schedule.SplitNames(field)
	if len(res.Names) == 0 {
		res.State = StateNoNames
		log.Warn("Names field is empty", zap.String("field", field))
		p.notifyAdmin(ctx, MsgNoNames)
		return res, nil
	}
	log.Info("Names extracted", zap.Strings("names", res.Names))

	contactRows, err := p.contacts.Fetch(ctx)
	if err != nil {
		res.State = StateFetchFailed
		p.notifyAdmin(ctx, fmt.Sprintf("Could not read the contacts: %v", err))
		return res, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	dir := contacts.BuildDirectory(contactRows, logging.Get(p.logger, logging.CategoryContacts))
	resolver := contacts.NewResolver(dir, logging.Get(p.logger, logging.CategoryResolve))
	agg := mailinglist.NewAggregator(resolver, p.notifier,
		mailinglist.Options{NotifyAmbiguous: p.opts.NotifyAmbiguous},
		logging.Get(p.logger, logging.CategoryResolve))

	list := agg.Aggregate(ctx, res.Names)
	res.Emails = list.Sorted()
	if len(res.Emails) == 0 {
		// Every name was unmatched and has been reported on its own.
		res.State = StateNoRecipients
		log.Warn("No recipients, reminder not sent", zap.Strings("names", res.Names))
		return res, nil
	}

	if err := p.notifier.Send(ctx, res.Names, res.Emails); err != nil {
		res.State = StateDeliveryError
		if !errors.Is(err, notify.ErrSendMail) {
			err = fmt.Errorf("%w: %w", notify.ErrSendMail, err)
		}
		return res, err
	}

	res.State = StateSent
	return res, nil
}

// notifyAdmin reports a problem. A failing notification is logged only, so
// it never hides the outcome of the run.
func (p *Pipeline) notifyAdmin(ctx context.Context, message string) {
	if err := p.notifier.NotifyAdmin(ctx, message); err != nil {
		logging.Get(p.logger, logging.CategoryNotify).Error("Failed to notify admin",
			zap.String("message", message),
			zap.Error(err))
	}
}
