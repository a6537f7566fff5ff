package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/entries"
	"github.com/lysyi3m/rss-digest/app/subscriptions"
	"github.com/lysyi3m/rss-digest/app/tasks"
)

var (
	_ digest.Target     = (*Profile)(nil)
	_ digest.EntryStore = (*entries.Store)(nil)
)

type AddFeedOptions struct {
	// Test fetches the feed once and fails if it cannot be retrieved.
	Test bool
	// MarkRead fetches the feed and marks its current entries read so
	// they do not appear in the next digest.
	MarkRead bool
	// FetchTitle fills an empty title from the feed itself.
	FetchTitle bool
	// Write saves the subscriptions file.
	Write bool
}

type Profile struct {
	name      string
	configDir string
	dataDir   string
	config    *config.Config
	list      *subscriptions.List
	fetch     entries.Options

	mu    sync.Mutex
	store *entries.Store
}

func (p *Profile) Name() string {
	return p.name
}

func (p *Profile) Config() *config.Config {
	return p.config
}

func (p *Profile) Settings() digest.Settings {
	return p.config
}

// List returns the profile's subscriptions. Changes are kept in memory
// until SaveList.
func (p *Profile) List() *subscriptions.List {
	return p.list
}

func (p *Profile) Subscriptions() *subscriptions.List {
	return p.list
}

func (p *Profile) TemplatesDir() string {
	return filepath.Join(p.configDir, templatesDirName)
}

func (p *Profile) SubscriptionsPath() string {
	return filepath.Join(p.configDir, feedsFileName)
}

func (p *Profile) SaveList() error {
	now := time.Now()
	p.list.DateModified = &now
	if p.list.Title == "" {
		p.list.Title = p.name + " subscriptions"
	}

	if err := p.list.WriteFile(p.SubscriptionsPath()); err != nil {
		return err
	}

	slog.Debug("Subscriptions saved", "profile", p.name, "feeds", p.list.Len())
	return nil
}

// Store opens the profile's entry store on first use.
func (p *Profile) Store(ctx context.Context) (*entries.Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store != nil {
		return p.store, nil
	}

	if err := os.MkdirAll(p.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	opts := p.fetch
	opts.Path = filepath.Join(p.dataDir, entriesFileName)

	store, err := entries.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open entry store for %s: %w", p.name, err)
	}
	p.store = store
	return store, nil
}

func (p *Profile) EntryStore(ctx context.Context) (digest.EntryStore, error) {
	store, err := p.Store(ctx)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (p *Profile) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store == nil {
		return nil
	}
	err := p.store.Close()
	p.store = nil
	return err
}

func (p *Profile) lastDigestPath() string {
	return filepath.Join(p.dataDir, lastDigestName)
}

// LastDigest returns when the last digest was committed, or nil if none
// has been.
func (p *Profile) LastDigest() (*time.Time, error) {
	data, err := os.ReadFile(p.lastDigestPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last digest time: %w", err)
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid last digest time in %s: %w", p.lastDigestPath(), err)
	}
	return &t, nil
}

func (p *Profile) SetLastDigest(t time.Time) error {
	if err := os.MkdirAll(p.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return os.WriteFile(p.lastDigestPath(), []byte(t.Format(time.RFC3339)+"\n"), 0o644)
}

// AddFeed subscribes to url. Fetching options go through the entry store
// before the subscription is added, so an unreachable feed leaves the
// list untouched.
func (p *Profile) AddFeed(ctx context.Context, url, title, category string, opts AddFeedOptions) error {
	if strings.TrimSpace(url) == "" {
		return subscriptions.ErrEmptyURL
	}
	if p.list.Contains(url) {
		return fmt.Errorf("%w: %s", subscriptions.ErrFeedExists, url)
	}

	if opts.Test || opts.MarkRead || opts.FetchTitle {
		fetched, err := p.fetchNew(ctx, url, opts.MarkRead)
		if err != nil {
			return err
		}
		if title == "" && opts.FetchTitle {
			title = fetched
		}
	}

	if err := p.list.AddFeed(url, title, category); err != nil {
		return err
	}

	slog.Info("Feed added", "profile", p.name, "url", url, "category", category)

	if opts.Write {
		return p.SaveList()
	}
	return nil
}

func (p *Profile) fetchNew(ctx context.Context, url string, markRead bool) (string, error) {
	store, err := p.Store(ctx)
	if err != nil {
		return "", err
	}

	added, err := store.AddFeed(ctx, url)
	if err != nil {
		return "", err
	}

	outcome, err := store.UpdateFeed(ctx, url)
	if err == nil && outcome.Status == tasks.StatusError {
		err = fmt.Errorf("%w: %s: %v", ErrFeedUnreachable, url, outcome.Err)
	}
	if err != nil {
		if added {
			if _, rmErr := store.RemoveFeed(context.WithoutCancel(ctx), url); rmErr != nil {
				slog.Warn("Failed to remove unreachable feed from store", "url", url, "error", rmErr)
			}
		}
		return "", err
	}

	if markRead {
		if err := store.MarkFeedRead(ctx, url); err != nil {
			return "", err
		}
	}

	stored, err := store.Feed(ctx, url)
	if err != nil || stored == nil {
		return "", err
	}
	return stored.Title, nil
}

// DeleteFeeds removes the feeds matching q and returns how many were
// removed. The entry store is reconciled on the next Sync.
func (p *Profile) DeleteFeeds(q subscriptions.Query, write bool) (int, error) {
	removed, err := p.list.RemoveFeeds(q)
	if err != nil {
		return 0, err
	}
	if removed == 0 {
		return 0, fmt.Errorf("%w: %s", subscriptions.ErrFeedNotFound, q)
	}

	slog.Info("Feeds deleted", "profile", p.name, "query", q.String(), "count", removed)

	if write {
		return removed, p.SaveList()
	}
	return removed, nil
}

// SetOPMLFile replaces the subscriptions with the OPML document at path.
// The document is parsed before anything is overwritten.
func (p *Profile) SetOPMLFile(ctx context.Context, path string, sync bool) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to open subscriptions file: %w", err)
	}

	list, err := subscriptions.ParseFile(path)
	if err != nil {
		return err
	}

	p.list = list
	if err := p.SaveList(); err != nil {
		return err
	}

	slog.Info("Subscriptions imported", "profile", p.name, "path", path, "feeds", list.Len())

	if sync {
		_, _, err := p.Sync(ctx)
		return err
	}
	return nil
}

// Sync reconciles the entry store's feed set with the subscriptions.
func (p *Profile) Sync(ctx context.Context) (added, removed []string, err error) {
	store, err := p.Store(ctx)
	if err != nil {
		return nil, nil, err
	}
	return digest.SyncStore(ctx, store, p.list)
}
