package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lysyi3m/rss-digest/app/database"
	"github.com/lysyi3m/rss-digest/app/feed"
	"github.com/lysyi3m/rss-digest/app/metrics"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type UpdateFeedTask struct {
	Task
	fetcher   Fetcher
	parser    *feed.Parser
	feedRepo  database.FeedRepository
	entryRepo database.EntryRepository

	// BackOff builds the retry policy for a single fetch.
	BackOff func() backoff.BackOff
}

func NewUpdateFeedTask(feedURL string, fetcher Fetcher, parser *feed.Parser, feedRepo database.FeedRepository, entryRepo database.EntryRepository, maxRetries int) *UpdateFeedTask {
	t := &UpdateFeedTask{
		Task:      NewTask(TaskTypeUpdateFeed, feedURL),
		fetcher:   fetcher,
		parser:    parser,
		feedRepo:  feedRepo,
		entryRepo: entryRepo,
	}
	t.MaxRetries = maxRetries
	t.BackOff = t.defaultBackOff
	return t
}

func (t *UpdateFeedTask) defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 0
	return b
}

func (t *UpdateFeedTask) Execute(ctx context.Context) Outcome {
	defer func() {
		metrics.FeedFetchDuration.Observe(t.GetDuration().Seconds())
	}()

	outcome := t.execute(ctx)
	metrics.FeedFetches.WithLabelValues(outcome.Status.String()).Inc()
	return outcome
}

func (t *UpdateFeedTask) execute(ctx context.Context) Outcome {
	select {
	case <-ctx.Done():
		return Failed(t.FeedURL, ctx.Err())
	default:
	}

	retrievedAt := time.Now().UTC()

	data, err := t.fetch(ctx)
	if err != nil {
		return t.fail(ctx, fmt.Errorf("failed to fetch feed: %w", err), retrievedAt)
	}

	metadata, items, err := t.parser.Run(data)
	if err != nil {
		return t.fail(ctx, err, retrievedAt)
	}

	err = t.feedRepo.UpdateFeedMetadata(ctx, t.FeedURL, database.FeedMetadata{
		Title:     metadata.Title,
		Link:      metadata.Link,
		Author:    metadata.Author,
		UpdatedAt: metadata.UpdatedAt,
	}, retrievedAt)
	if err != nil {
		return Failed(t.FeedURL, fmt.Errorf("failed to store feed metadata: %w", err))
	}

	entries := make([]database.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, toEntry(t.FeedURL, item))
	}

	changed, err := t.entryRepo.UpsertEntries(ctx, t.FeedURL, entries, retrievedAt)
	if err != nil {
		return Failed(t.FeedURL, fmt.Errorf("failed to store entries: %w", err))
	}

	metrics.NewEntries.Add(float64(changed))

	slog.Debug("Task completed",
		"type", string(t.Type),
		"feed", t.FeedURL,
		"duration", t.GetDuration(),
		"total", len(items),
		"new", changed)

	if changed == 0 {
		return Outcome{URL: t.FeedURL, Status: StatusUnchanged}
	}
	return Outcome{URL: t.FeedURL, Status: StatusUpdated, NewEntries: changed}
}

func (t *UpdateFeedTask) fetch(ctx context.Context) ([]byte, error) {
	var data []byte

	operation := func() error {
		var err error
		data, err = t.fetcher.Fetch(ctx, t.FeedURL)
		if err == nil {
			return nil
		}

		var statusErr *feed.StatusError
		if (errors.As(err, &statusErr) && !statusErr.Temporary()) || errors.Is(err, feed.ErrFeedTooLarge) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		slog.Debug("Retrying feed fetch", "feed", t.FeedURL, "delay", next, "error", err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(t.BackOff(), uint64(max(t.MaxRetries, 0))), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}
	return data, nil
}

func (t *UpdateFeedTask) fail(ctx context.Context, err error, retrievedAt time.Time) Outcome {
	if recordErr := t.feedRepo.RecordFetchError(context.WithoutCancel(ctx), t.FeedURL, err, retrievedAt); recordErr != nil {
		slog.Warn("Failed to record fetch error", "feed", t.FeedURL, "error", recordErr)
	}
	return Failed(t.FeedURL, err)
}

func toEntry(feedURL string, item feed.Item) database.Entry {
	contents := make(database.Contents, 0, len(item.Content))
	for _, c := range item.Content {
		contents = append(contents, database.Content{Value: c.Value, Type: c.Type, Language: c.Language})
	}

	return database.Entry{
		FeedURL:     feedURL,
		ID:          item.GUID,
		Title:       item.Title,
		Link:        item.Link,
		Author:      item.Author(),
		Summary:     item.Summary,
		Content:     contents,
		PublishedAt: database.NewUnixTime(item.PublishedAt),
		UpdatedAt:   database.NewUnixTime(item.UpdatedAt),
		ContentHash: item.ContentHash,
	}
}
