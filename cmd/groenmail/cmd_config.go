package main

import (
	"fmt"
	"os"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/config"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/schedule"

	"github.com/spf13/cobra"
)

// runNextDate prints the schedule date of the coming Saturday
func runNextDate(cmd *cobra.Command, args []string) error {
	day := schedule.NextSaturday(now())
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", schedule.ShortDate(day), day.Format("Monday 2 January 2006"))
	return nil
}

// runConfigInit writes the default configuration
func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", configPath)
	return nil
}
