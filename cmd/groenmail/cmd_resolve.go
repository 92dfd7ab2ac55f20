package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/contacts"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	nameStyle     = lipgloss.NewStyle().Bold(true)
	notFoundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E57373"))
)

// runResolve prints what each name resolves to
func runResolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, err := currentConfig()
	if err != nil {
		return err
	}

	factory := &sourceFactory{cfg: c}
	src, err := factory.contacts(ctx)
	if err != nil {
		return err
	}
	rows, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch contacts: %w", err)
	}

	dir := contacts.BuildDirectory(rows, logging.Get(logger, logging.CategoryContacts))
	resolver := contacts.NewResolver(dir, logging.Get(logger, logging.CategoryResolve))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d contacts loaded (%d rows skipped)\n", dir.Len(), dir.Skipped())
	for _, name := range args {
		o := resolver.Resolve(name)
		if !o.Matched() {
			fmt.Fprintf(out, "%s: %s\n", nameStyle.Render(name), notFoundStyle.Render("not found"))
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", nameStyle.Render(name), strings.Join(o.SortedEmails(), ", "))
	}
	return nil
}
