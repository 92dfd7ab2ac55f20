package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_VerboseForcesDebug(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "error"}, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug to be enabled with verbose")
	}
}

func TestNew_LevelFromConfig(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "warn", Format: "json"}, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info to be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("expected warn to be enabled")
	}
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "groenmail.log")
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", File: path}, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	Get(logger, CategoryBoot).Info("hello from boot")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from boot") {
		t.Errorf("log file missing message: %s", data)
	}
	if !strings.Contains(string(data), `"logger":"boot"`) {
		t.Errorf("log file missing category name: %s", data)
	}
}

func TestGet_NamesCategory(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	root := zap.New(core)

	Get(root, CategoryResolve).Debug("resolving")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].LoggerName != "resolve" {
		t.Errorf("expected logger name resolve, got %q", entries[0].LoggerName)
	}
}

func TestGet_NilRoot(t *testing.T) {
	// Must not panic
	Get(nil, CategoryNotify).Info("dropped")
}

func TestGet_DisabledCategory(t *testing.T) {
	if _, err := New(config.LoggingConfig{Categories: map[string]bool{"resolve": false}}, false); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _, _ = New(config.LoggingConfig{}, false) })

	core, logs := observer.New(zapcore.DebugLevel)
	root := zap.New(core)

	Get(root, CategoryResolve).Info("muted")
	Get(root, CategoryNotify).Info("kept")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "kept" {
		t.Errorf("expected the notify entry, got %q", entries[0].Message)
	}
}
