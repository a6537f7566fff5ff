package cfg

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestOptionDefaults(t *testing.T) {
	var raw Options
	if _, err := flags.NewParser(&raw, flags.None).ParseArgs([]string{"--fetch-retries", "1"}); err != nil {
		t.Fatal(err)
	}

	if raw.WorkerCount != 5 {
		t.Errorf("Expected worker count 5, got %d", raw.WorkerCount)
	}
	if raw.FetchTimeout != 30*time.Second {
		t.Errorf("Expected fetch timeout 30s, got %v", raw.FetchTimeout)
	}
	if raw.FetchRetries != 1 {
		t.Errorf("Expected fetch retries 1, got %d", raw.FetchRetries)
	}
	if raw.LogFormat != "text" {
		t.Errorf("Expected log format 'text', got %q", raw.LogFormat)
	}
}

func TestLogFormatChoice(t *testing.T) {
	var raw Options
	_, err := flags.NewParser(&raw, flags.None).ParseArgs([]string{"--log-format", "xml"})
	if err == nil {
		t.Error("Expected error for unsupported log format")
	}
}

func TestLoad(t *testing.T) {
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))) })

	root := t.TempDir()
	raw := &Options{
		ConfigDir:    filepath.Join(root, "config"),
		WorkerCount:  0,
		FetchRetries: -1,
		UserAgent:    "Test Agent",
		LogFormat:    "json",
	}
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "share"))

	cfg, err := Load(raw)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.ConfigDir != filepath.Join(root, "config") {
		t.Errorf("Expected explicit config dir, got %q", cfg.ConfigDir)
	}
	if cfg.DataDir != filepath.Join(root, "share", "rss-digest") {
		t.Errorf("Expected data dir under XDG_DATA_HOME, got %q", cfg.DataDir)
	}
	if cfg.WorkerCount != 1 {
		t.Errorf("Expected worker count clamped to 1, got %d", cfg.WorkerCount)
	}
	if cfg.FetchRetries != 0 {
		t.Errorf("Expected retries clamped to 0, got %d", cfg.FetchRetries)
	}
	if Get() != cfg {
		t.Error("Expected Get to return the loaded config")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, "json", false)
	logger.Debug("Hidden")
	logger.Info("Digest sent", "profile", "alice")

	out := buf.String()
	if strings.Contains(out, "Hidden") {
		t.Error("Expected debug message to be filtered")
	}
	if !strings.Contains(out, `"profile":"alice"`) {
		t.Errorf("Expected JSON output, got %q", out)
	}

	if !NewLogger(&buf, "text", true).Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected debug level enabled")
	}
}
