package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
)

var _ FeedRepository = (*feedRepository)(nil)

type feedRepository struct {
	db *DB
}

func NewFeedRepository(db *DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) AddFeed(ctx context.Context, url string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO feeds (url, added_at) VALUES (?, ?)
		ON CONFLICT(url) DO NOTHING
	`, url, NewUnixTime(ptr(time.Now())))
	if err != nil {
		return false, fmt.Errorf("failed to add feed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to add feed: %w", err)
	}
	return n > 0, nil
}

func (r *feedRepository) RemoveFeed(ctx context.Context, url string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feeds WHERE url = ?`, url)
	if err != nil {
		return false, fmt.Errorf("failed to remove feed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove feed: %w", err)
	}
	return n > 0, nil
}

func (r *feedRepository) GetFeed(ctx context.Context, url string) (*Feed, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("*").From("feeds").Where(sb.Equal("url", url))
	query, args := sb.Build()

	var feed Feed
	err := r.db.GetContext(ctx, &feed, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	return &feed, nil
}

func (r *feedRepository) GetFeeds(ctx context.Context) ([]Feed, error) {
	var feeds []Feed
	if err := r.db.SelectContext(ctx, &feeds, `SELECT * FROM feeds ORDER BY added_at, url`); err != nil {
		return nil, fmt.Errorf("failed to get feeds: %w", err)
	}
	return feeds, nil
}

func (r *feedRepository) GetFeedURLs(ctx context.Context) ([]string, error) {
	var urls []string
	if err := r.db.SelectContext(ctx, &urls, `SELECT url FROM feeds ORDER BY added_at, url`); err != nil {
		return nil, fmt.Errorf("failed to get feed urls: %w", err)
	}
	return urls, nil
}

func (r *feedRepository) GetFeedCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM feeds`); err != nil {
		return 0, fmt.Errorf("failed to count feeds: %w", err)
	}
	return count, nil
}

func (r *feedRepository) UpdateFeedMetadata(ctx context.Context, url string, metadata FeedMetadata, retrievedAt time.Time) error {
	ub := sqlbuilder.SQLite.NewUpdateBuilder()
	ub.Update("feeds").
		Set(
			ub.Assign("title", metadata.Title),
			ub.Assign("link", metadata.Link),
			ub.Assign("author", metadata.Author),
			ub.Assign("updated_at", NewUnixTime(metadata.UpdatedAt)),
			ub.Assign("last_retrieved_at", NewUnixTime(&retrievedAt)),
			ub.Assign("last_error", ""),
		).
		Where(ub.Equal("url", url))
	query, args := ub.Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update feed metadata: %w", err)
	}
	return nil
}

func (r *feedRepository) RecordFetchError(ctx context.Context, url string, fetchErr error, retrievedAt time.Time) error {
	ub := sqlbuilder.SQLite.NewUpdateBuilder()
	ub.Update("feeds").
		Set(
			ub.Assign("last_error", fetchErr.Error()),
			ub.Assign("last_retrieved_at", NewUnixTime(&retrievedAt)),
		).
		Where(ub.Equal("url", url))
	query, args := ub.Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record fetch error: %w", err)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
