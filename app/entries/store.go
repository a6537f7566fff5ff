package entries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/rss-digest/app/database"
	"github.com/lysyi3m/rss-digest/app/feed"
	"github.com/lysyi3m/rss-digest/app/tasks"
	"github.com/samber/lo"
)

var ErrUnknownFeed = errors.New("feed is not in the entry store")

type Options struct {
	Path       string
	Workers    int
	Timeout    time.Duration
	Retries    int
	UserAgent  string
	HTTPClient *http.Client
}

// Store keeps feed state and entries for one profile and refreshes them
// from the network.
type Store struct {
	db        *database.DB
	feedRepo  database.FeedRepository
	entryRepo database.EntryRepository
	fetcher   tasks.Fetcher
	parser    *feed.Parser
	runner    tasks.TaskRunnerInterface
	retries   int
}

func Open(opts Options) (*Store, error) {
	db, err := database.Open(opts.Path)
	if err != nil {
		return nil, err
	}

	slog.Debug("Entry store opened", "path", opts.Path, "workers", opts.Workers)

	return &Store{
		db:        db,
		feedRepo:  database.NewFeedRepository(db),
		entryRepo: database.NewEntryRepository(db),
		fetcher:   feed.NewFetcher(opts.HTTPClient, opts.UserAgent, opts.Timeout),
		parser:    feed.NewParser(),
		runner:    tasks.NewRunner(opts.Workers, 0),
		retries:   opts.Retries,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) AddFeed(ctx context.Context, url string) (bool, error) {
	return s.feedRepo.AddFeed(ctx, url)
}

func (s *Store) RemoveFeed(ctx context.Context, url string) (bool, error) {
	return s.feedRepo.RemoveFeed(ctx, url)
}

func (s *Store) ListFeeds(ctx context.Context) ([]string, error) {
	return s.feedRepo.GetFeedURLs(ctx)
}

func (s *Store) Feed(ctx context.Context, url string) (*database.Feed, error) {
	return s.feedRepo.GetFeed(ctx, url)
}

func (s *Store) newTask(url string) tasks.TaskInterface {
	return tasks.NewUpdateFeedTask(url, s.fetcher, s.parser, s.feedRepo, s.entryRepo, s.retries)
}

// UpdateAll refreshes every feed in the store. Per-feed failures are
// reported in the outcomes, not as an error.
func (s *Store) UpdateAll(ctx context.Context) ([]tasks.Outcome, error) {
	urls, err := s.feedRepo.GetFeedURLs(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	outcomes := s.runner.Run(ctx, lo.Map(urls, func(url string, _ int) tasks.TaskInterface {
		return s.newTask(url)
	}))

	counts := lo.CountValuesBy(outcomes, func(o tasks.Outcome) tasks.Status { return o.Status })
	slog.Info("Feeds updated",
		"total", len(outcomes),
		"updated", counts[tasks.StatusUpdated],
		"unchanged", counts[tasks.StatusUnchanged],
		"errors", counts[tasks.StatusError],
		"duration", time.Since(start))

	return outcomes, nil
}

func (s *Store) UpdateFeed(ctx context.Context, url string) (tasks.Outcome, error) {
	stored, err := s.feedRepo.GetFeed(ctx, url)
	if err != nil {
		return tasks.Outcome{}, err
	}
	if stored == nil {
		return tasks.Outcome{}, fmt.Errorf("%w: %s", ErrUnknownFeed, url)
	}

	return s.runner.Run(ctx, []tasks.TaskInterface{s.newTask(url)})[0], nil
}

// UnreadEntries returns unread entries keyed by feed URL.
func (s *Store) UnreadEntries(ctx context.Context) (map[string][]database.Entry, error) {
	unread, err := s.entryRepo.GetEntries(ctx, database.EntryFilter{UnreadOnly: true})
	if err != nil {
		return nil, err
	}
	return lo.GroupBy(unread, func(e database.Entry) string { return e.FeedURL }), nil
}

func (s *Store) MarkRead(ctx context.Context, entries []database.Entry) error {
	keys := lo.Map(entries, func(e database.Entry, _ int) database.EntryKey { return e.Key() })
	marked, err := s.entryRepo.MarkRead(ctx, keys)
	if err != nil {
		return err
	}
	slog.Debug("Entries marked read", "count", marked)
	return nil
}

func (s *Store) MarkFeedRead(ctx context.Context, url string) error {
	_, err := s.entryRepo.MarkFeedRead(ctx, url)
	return err
}
