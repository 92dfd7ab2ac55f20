// Package logging builds the zap logger used by groenmail and hands out
// per-category child loggers, so a run can be followed from schedule lookup to
// delivery in one log stream.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config loading
	CategorySheets   Category = "sheets"   // Tabular source fetches
	CategorySchedule Category = "schedule" // Row lookup and name extraction
	CategoryContacts Category = "contacts" // Directory building
	CategoryResolve  Category = "resolve"  // Name resolution and aggregation
	CategoryNotify   Category = "notify"   // Admin notifications and delivery
)

var (
	togglesMu sync.RWMutex
	toggles   config.LoggingConfig
)

// ParseLevel maps a config level name to a zap level. Unknown names are info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds the root logger from config. verbose forces debug level.
// Output goes to stderr, and additionally to cfg.File when set.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.DisableStacktrace = true
	}

	level := ParseLevel(cfg.Level)
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	togglesMu.Lock()
	toggles = cfg
	togglesMu.Unlock()

	return logger, nil
}

// IsCategoryEnabled reports whether category was left on by the config
// passed to the last New call.
func IsCategoryEnabled(category Category) bool {
	togglesMu.RLock()
	defer togglesMu.RUnlock()
	return toggles.IsCategoryEnabled(string(category))
}

// Get returns the child logger for a category. A nil root or a disabled
// category yields a no-op logger.
func Get(root *zap.Logger, category Category) *zap.Logger {
	if root == nil || !IsCategoryEnabled(category) {
		return zap.NewNop()
	}
	return root.Named(string(category))
}
