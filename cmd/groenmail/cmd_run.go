package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/logging"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/notify"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/reminder"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/schedule"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runReminder performs one reminder run
func runReminder(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loaded, err := currentConfig()
	if err != nil {
		return err
	}
	c := *loaded
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		c.Email.On = false
	}
	if err := c.Validate(); err != nil {
		return err
	}

	today := now()
	day := schedule.NextSaturday(today)
	if v, _ := cmd.Flags().GetString("date"); v != "" {
		day, err = schedule.ParseShortDate(v, today.Year(), today.Location())
		if err != nil {
			return err
		}
	}
	date := schedule.ShortDate(day)

	logger.Info("Starting reminder run",
		zap.String("date", date),
		zap.Bool("email_on", c.Email.On))

	factory := &sourceFactory{cfg: &c}
	scheduleSrc, err := factory.schedule(ctx, day.Year())
	if err != nil {
		return err
	}
	contactsSrc, err := factory.contacts(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	notifier := notify.FromConfig(&c, day, out, logging.Get(logger, logging.CategoryNotify))
	pipeline := reminder.New(scheduleSrc, contactsSrc, notifier, reminder.Options{
		NamesColumn:     c.Schedule.NamesColumn,
		NotifyAmbiguous: c.Resolver.NotifyAmbiguous,
	}, logger)

	res, err := pipeline.RunForDate(ctx, date)
	logger.Info("Reminder run finished",
		zap.String("date", res.Date),
		zap.String("state", string(res.State)))

	fmt.Fprintf(out, "Date: %s\nResult: %s\n", res.Date, res.State)
	if len(res.Names) > 0 {
		fmt.Fprintf(out, "Names: %s\n", strings.Join(res.Names, ", "))
	}
	if len(res.Emails) > 0 {
		fmt.Fprintf(out, "Recipients: %s\n", strings.Join(res.Emails, ", "))
	}
	return err
}
