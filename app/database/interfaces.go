package database

import (
	"context"
	"time"
)

type FeedRepository interface {
	AddFeed(ctx context.Context, url string) (bool, error)
	RemoveFeed(ctx context.Context, url string) (bool, error)
	GetFeed(ctx context.Context, url string) (*Feed, error)
	GetFeeds(ctx context.Context) ([]Feed, error)
	GetFeedURLs(ctx context.Context) ([]string, error)
	GetFeedCount(ctx context.Context) (int, error)

	UpdateFeedMetadata(ctx context.Context, url string, metadata FeedMetadata, retrievedAt time.Time) error
	RecordFetchError(ctx context.Context, url string, fetchErr error, retrievedAt time.Time) error
}

type EntryRepository interface {
	UpsertEntries(ctx context.Context, feedURL string, entries []Entry, seenAt time.Time) (int, error)
	GetEntries(ctx context.Context, filter EntryFilter) ([]Entry, error)
	GetEntryStats(ctx context.Context, feedURL string) (int, int, error)

	MarkRead(ctx context.Context, keys []EntryKey) (int64, error)
	MarkFeedRead(ctx context.Context, feedURL string) (int64, error)
}
