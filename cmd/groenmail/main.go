package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/config"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	// Loaded once per invocation
	cfg    *config.Config
	logger *zap.Logger

	// now is replaced in tests
	now = time.Now
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "groenmail",
	Short: "Weekly garden maintenance reminder",
	Long: `groenmail reminds the volunteers scheduled for the coming Saturday to
maintain the shared garden.

The schedule lists names per Saturday. Names are resolved against the
contacts list and the reminder is mailed to everyone found. Names that
cannot be resolved are reported to the admin address.

Run it once a week from cron.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logging.Get(logger, logging.CategoryBoot).Debug("Configuration loaded",
			zap.String("path", configPath),
			zap.Bool("email_on", cfg.Email.On))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// runCmd sends this week's reminder
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Send the reminder for the coming Saturday",
	Long: `Looks up the coming Saturday in the schedule, resolves the names on that
row and sends the reminder.

Nothing is sent when the date is not in the schedule. Problems with the
schedule data and unknown names are mailed to the admin address.

Examples:
  groenmail run --dry-run
  groenmail run --date 14-06`,
	Args: cobra.NoArgs,
	RunE: runReminder,
}

// resolveCmd checks names against the contacts list
var resolveCmd = &cobra.Command{
	Use:   "resolve [name...]",
	Short: "Show the addresses names resolve to",
	Long: `Resolves each name against the contacts list the same way a run does,
without sending anything.

Example:
  groenmail resolve jan "oma klaas"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

// nextDateCmd prints the date a run would look up
var nextDateCmd = &cobra.Command{
	Use:   "next-date",
	Short: "Print the schedule date of the coming Saturday",
	Args:  cobra.NoArgs,
	RunE:  runNextDate,
}

// configCmd manages the configuration file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "groenmail.yaml", "Configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	// Run flags
	runCmd.Flags().Bool("dry-run", false, "Print messages instead of mailing them")
	runCmd.Flags().String("date", "", "Schedule date to use instead of the coming Saturday (DD-MM)")

	// Config flags
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)

	// Add commands to root
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(nextDateCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// currentConfig returns the loaded configuration, loading it when a command
// runs outside of cobra.
func currentConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	return config.Load(configPath)
}
