package cfg

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// Options are the application-wide flags shared by every command.
type Options struct {
	// Storage locations
	ConfigDir string `long:"config-dir" env:"RSS_DIGEST_CONFIG_DIR" description:"Directory holding config.yml and profile settings (default: user config dir)"`
	DataDir   string `long:"data-dir" env:"RSS_DIGEST_DATA_DIR" description:"Directory holding entry databases (default: user data dir)"`

	// Fetching
	WorkerCount  int           `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of concurrent feed fetches"`
	FetchTimeout time.Duration `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30s" description:"Timeout for a single feed fetch"`
	FetchRetries int           `long:"fetch-retries" env:"FETCH_RETRIES" default:"3" description:"Retries for transient fetch failures"`
	UserAgent    string        `long:"user-agent" env:"USER_AGENT" default:"RSS Digest/1.0" description:"User agent string for HTTP requests"`

	// HTTP server
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port for the serve command"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	Timezone  string `long:"timezone" env:"TZ" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	LogFormat string `long:"log-format" env:"LOG_FORMAT" default:"text" choice:"text" choice:"json" description:"Log output format"`
}

var globalCfg *Cfg

// LoadEnv reads a .env file from the working directory if there is one.
// It must run before flags are parsed so env defaults see its values.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env")
	}
}

// Load resolves parsed options into the global configuration and
// installs the default logger.
func Load(raw *Options) (*Cfg, error) {
	configDir, err := resolveDir(raw.ConfigDir, os.UserConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}
	dataDir, err := resolveDir(raw.DataDir, userDataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to determine data directory: %w", err)
	}

	cfg := &Cfg{
		ConfigDir:    configDir,
		DataDir:      dataDir,
		WorkerCount:  max(raw.WorkerCount, 1),
		FetchTimeout: raw.FetchTimeout,
		FetchRetries: max(raw.FetchRetries, 0),
		UserAgent:    raw.UserAgent,
		Port:         raw.Port,
		APIAccessKey: raw.APIAccessKey,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		LogFormat:    raw.LogFormat,
		Version:      GetVersion(),
	}

	slog.SetDefault(NewLogger(os.Stderr, cfg.LogFormat, cfg.Debug))

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func NewLogger(w io.Writer, format string, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func resolveDir(dir string, base func() (string, error)) (string, error) {
	if dir != "" {
		return dir, nil
	}
	root, err := base()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "rss-digest"), nil
}

func userDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			slog.Debug("Timezone configured", "timezone", timezone)
		}
	}
	return nil
}
