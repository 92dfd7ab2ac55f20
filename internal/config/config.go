package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all groenmail configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Outgoing mail
	Email EmailConfig `yaml:"email"`

	// Google API access
	Google GoogleConfig `yaml:"google"`

	// Tabular sources
	Schedule ScheduleConfig `yaml:"schedule"`
	Contacts ContactsConfig `yaml:"contacts"`

	// Name resolution
	Resolver ResolverConfig `yaml:"resolver"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// EmailConfig configures the notifier.
type EmailConfig struct {
	// On toggles real delivery. When false, messages are printed (dry run).
	On       bool   `yaml:"on"`
	Server   string `yaml:"server"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ReplyTo  string `yaml:"reply_to"`
	Admin    string `yaml:"admin"`
	Timeout  string `yaml:"timeout"`

	// GardenContacts are listed in the reminder as the people holding the shed key.
	GardenContacts []string `yaml:"garden_contacts"`

	// AttachCalendar adds an .ics invite for the maintenance day.
	AttachCalendar bool `yaml:"attach_calendar"`
}

// GoogleConfig configures access to the Google Sheets API.
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	FetchTimeout    string `yaml:"fetch_timeout"`
}

// SourceConfig locates one table. Exactly one of SheetID or XLSXPath is used,
// SheetID taking precedence.
type SourceConfig struct {
	SheetID  string `yaml:"sheet_id"`
	XLSXPath string `yaml:"xlsx_path"`
	Tab      string `yaml:"tab"`
	Range    string `yaml:"range"`
}

// ScheduleConfig configures the weekly schedule table.
type ScheduleConfig struct {
	SourceConfig `yaml:",inline"`

	// NamesColumn is the zero-based column holding the volunteer names.
	NamesColumn int `yaml:"names_column"`
}

// ContactsConfig configures the contacts table.
type ContactsConfig struct {
	SourceConfig `yaml:",inline"`
}

// ResolverConfig configures name resolution.
type ResolverConfig struct {
	// NotifyAmbiguous sends an admin notification when a single name
	// resolves to more than one address. The addresses are still used.
	NotifyAmbiguous bool `yaml:"notify_ambiguous"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "groenmail",
		Version: "1.0.0",

		Email: EmailConfig{
			On:             false,
			Port:           465,
			Timeout:        "30s",
			AttachCalendar: true,
		},

		Google: GoogleConfig{
			CredentialsFile: "credentials.json",
			FetchTimeout:    "30s",
		},

		Schedule: ScheduleConfig{
			SourceConfig: SourceConfig{
				Range: "A3:F27",
			},
			NamesColumn: 5,
		},

		Contacts: ContactsConfig{
			SourceConfig: SourceConfig{
				Tab:   "contacts",
				Range: "A2:D40",
			},
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults plus environment when there is no file
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// The variable names match the .env files already deployed next to the cron job.
func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv("EMAIL_ON"); ok && v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Email.On = on
		}
	}
	if v := os.Getenv("SMTP_SRV"); v != "" {
		c.Email.Server = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Email.Port = port
		}
	}
	if v := os.Getenv("SMTP_USR"); v != "" {
		c.Email.Username = v
	}
	if v := os.Getenv("SMTP_PWD"); v != "" {
		c.Email.Password = v
	}
	if v := os.Getenv("REPLY_TO"); v != "" {
		c.Email.ReplyTo = v
	}
	if v := os.Getenv("ADM_EMAIL"); v != "" {
		c.Email.Admin = v
	}
	if v := os.Getenv("GROEN_CONTACTS"); v != "" {
		c.Email.GardenContacts = splitList(v)
	}

	if v := os.Getenv("GOOGLE_CREDENTIALS"); v != "" {
		c.Google.CredentialsFile = v
	}

	if v := os.Getenv("CONTACTS_SHEET_ID"); v != "" {
		c.Contacts.SheetID = v
	}
	if v := os.Getenv("CONTACTS_SHEET_RANGE"); v != "" {
		c.Contacts.Range = v
	}
	if v := os.Getenv("SCHEMA_SHEET_ID"); v != "" {
		c.Schedule.SheetID = v
	}
	if v := os.Getenv("SCHEMA_SHEET_RANGE"); v != "" {
		c.Schedule.Range = v
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetFetchTimeout returns the sheet fetch timeout as a duration.
func (c *Config) GetFetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Google.FetchTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GetSMTPTimeout returns the SMTP dial and send timeout as a duration.
func (c *Config) GetSMTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.Email.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// ScheduleTab returns the schedule tab name. The schedule workbook keeps one
// tab per year, so an empty tab means the tab of the given year.
func (c *Config) ScheduleTab(year int) string {
	if c.Schedule.Tab != "" {
		return c.Schedule.Tab
	}
	return strconv.Itoa(year)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Schedule.configured() {
		return fmt.Errorf("%w: schedule source not configured (set schedule.sheet_id, schedule.xlsx_path or SCHEMA_SHEET_ID)", ErrInvalid)
	}
	if !c.Contacts.configured() {
		return fmt.Errorf("%w: contacts source not configured (set contacts.sheet_id, contacts.xlsx_path or CONTACTS_SHEET_ID)", ErrInvalid)
	}
	if c.Schedule.NamesColumn < 1 {
		return fmt.Errorf("%w: schedule.names_column must be at least 1, got %d", ErrInvalid, c.Schedule.NamesColumn)
	}
	if (c.Schedule.SheetID != "" || c.Contacts.SheetID != "") && c.Google.CredentialsFile == "" {
		return fmt.Errorf("%w: google.credentials_file is required for Google Sheets sources", ErrInvalid)
	}

	if !c.Email.On {
		return nil
	}

	var missing []string
	if c.Email.Server == "" {
		missing = append(missing, "server")
	}
	if c.Email.Username == "" {
		missing = append(missing, "username")
	}
	if c.Email.Password == "" {
		missing = append(missing, "password")
	}
	if c.Email.Admin == "" {
		missing = append(missing, "admin")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: email.on requires email settings: %s", ErrInvalid, strings.Join(missing, ", "))
	}
	if c.Email.Port <= 0 || c.Email.Port > 65535 {
		return fmt.Errorf("%w: invalid smtp port %d", ErrInvalid, c.Email.Port)
	}
	return nil
}

func (s SourceConfig) configured() bool {
	return s.SheetID != "" || s.XLSXPath != ""
}
