package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/entries"
	"github.com/lysyi3m/rss-digest/app/subscriptions"
)

const (
	profilesDirName  = "profiles"
	configFileName   = "config.yml"
	feedsFileName    = "feeds.opml"
	entriesFileName  = "entries.db"
	lastDigestName   = "last_digest"
	templatesDirName = "templates"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

type AddOptions struct {
	Email    string
	UserName string
}

// Manager locates profiles on disk. Settings and subscriptions live under
// ConfigDir; entry databases and digest state live under DataDir.
type Manager struct {
	ConfigDir string
	DataDir   string
	// Fetch holds the application-wide fetch options; a profile's fetch.*
	// settings override them.
	Fetch entries.Options
}

func NewManager(configDir, dataDir string, fetch entries.Options) *Manager {
	return &Manager{ConfigDir: configDir, DataDir: dataDir, Fetch: fetch}
}

// ProfilesDir is the directory holding one settings directory per profile.
func (m *Manager) ProfilesDir() string {
	return filepath.Join(m.ConfigDir, profilesDirName)
}

func (m *Manager) configPath(name string) string {
	return filepath.Join(m.ProfilesDir(), name)
}

func (m *Manager) dataPath(name string) string {
	return filepath.Join(m.DataDir, profilesDirName, name)
}

// Init creates the directory layout and seeds the application config.yml
// with the built-in defaults when it does not exist yet.
func (m *Manager) Init() error {
	for _, dir := range []string{m.ProfilesDir(), filepath.Join(m.DataDir, profilesDirName)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	path := filepath.Join(m.ConfigDir, configFileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, config.DefaultsYAML(), 0o644); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
		slog.Info("Default configuration written", "path", path)
	}
	return nil
}

func (m *Manager) appConfig() (*config.Config, error) {
	return config.LoadFile(filepath.Join(m.ConfigDir, configFileName), config.Defaults())
}

func (m *Manager) List() ([]string, error) {
	dirEntries, err := os.ReadDir(m.ProfilesDir())
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		if e.IsDir() && validName.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func (m *Manager) Exists(name string) bool {
	if !validName.MatchString(name) {
		return false
	}
	info, err := os.Stat(m.configPath(name))
	return err == nil && info.IsDir()
}

func (m *Manager) Add(name string, opts AddOptions) (*Profile, error) {
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if m.Exists(name) {
		return nil, fmt.Errorf("%w: %s", ErrProfileExists, name)
	}

	dir := m.configPath(name)
	if err := os.MkdirAll(filepath.Join(dir, templatesDirName), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	if err := os.MkdirAll(m.dataPath(name), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile data directory: %w", err)
	}

	settings := config.New(nil, nil)
	if opts.UserName != "" {
		_ = settings.Set("name", opts.UserName)
	}
	if opts.Email != "" {
		_ = settings.Set("email", opts.Email)
	}
	if err := settings.WriteFile(filepath.Join(dir, configFileName)); err != nil {
		return nil, err
	}

	list := subscriptions.New()
	list.Title = name + " subscriptions"
	if err := list.WriteFile(filepath.Join(dir, feedsFileName)); err != nil {
		return nil, err
	}

	slog.Info("Profile created", "profile", name)

	return m.Get(name)
}

// Get loads a profile's settings and subscriptions. The entry store is
// opened lazily on first use.
func (m *Manager) Get(name string) (*Profile, error) {
	if !m.Exists(name) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	appConfig, err := m.appConfig()
	if err != nil {
		return nil, err
	}

	dir := m.configPath(name)
	settings, err := config.LoadFile(filepath.Join(dir, configFileName), appConfig)
	if err != nil {
		return nil, err
	}

	list, err := subscriptions.ParseFile(filepath.Join(dir, feedsFileName))
	if err != nil {
		return nil, err
	}

	return &Profile{
		name:      name,
		configDir: dir,
		dataDir:   m.dataPath(name),
		config:    settings,
		list:      list,
		fetch:     fetchOptions(m.Fetch, settings),
	}, nil
}

func (m *Manager) Delete(name string) error {
	if !m.Exists(name) {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	for _, dir := range []string{m.configPath(name), m.dataPath(name)} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
	}

	slog.Info("Profile deleted", "profile", name)
	return nil
}

func fetchOptions(base entries.Options, settings *config.Config) entries.Options {
	opts := base
	if n, ok := settings.Int("fetch.workers"); ok && n > 0 {
		opts.Workers = n
	}
	if d, ok := settings.Duration("fetch.timeout"); ok && d > 0 {
		opts.Timeout = d
	}
	if n, ok := settings.Int("fetch.retries"); ok && n >= 0 {
		opts.Retries = n
	}
	return opts
}
