package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/huandu/go-sqlbuilder"
)

var _ EntryRepository = (*entryRepository)(nil)

type entryRepository struct {
	db *DB
}

func NewEntryRepository(db *DB) EntryRepository {
	return &entryRepository{db: db}
}

// UpsertEntries stores entries for a feed and returns how many are new or
// changed. New and changed entries are (re)marked unread.
func (r *entryRepository) UpsertEntries(ctx context.Context, feedURL string, entries []Entry, seenAt time.Time) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	seen := NewUnixTime(&seenAt)
	changed := 0

	for _, e := range uniqueEntries(feedURL, entries) {
		var hash string
		err := tx.GetContext(ctx, &hash, `SELECT content_hash FROM entries WHERE feed_url = ? AND id = ?`, feedURL, e.ID)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.ExecContext(ctx, `
				INSERT INTO entries (feed_url, id, title, link, author, summary, content,
					published_at, updated_at, content_hash, read, first_seen_at, last_updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
			`, feedURL, e.ID, e.Title, e.Link, e.Author, e.Summary, e.Content,
				e.PublishedAt, e.UpdatedAt, e.ContentHash, seen, seen)
			if err != nil {
				return 0, fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
			}
			changed++

		case err != nil:
			return 0, fmt.Errorf("failed to look up entry %s: %w", e.ID, err)

		case hash != e.ContentHash:
			_, err = tx.ExecContext(ctx, `
				UPDATE entries SET title = ?, link = ?, author = ?, summary = ?, content = ?,
					published_at = ?, updated_at = ?, content_hash = ?, read = 0, last_updated_at = ?
				WHERE feed_url = ? AND id = ?
			`, e.Title, e.Link, e.Author, e.Summary, e.Content,
				e.PublishedAt, e.UpdatedAt, e.ContentHash, seen, feedURL, e.ID)
			if err != nil {
				return 0, fmt.Errorf("failed to update entry %s: %w", e.ID, err)
			}
			changed++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit entries: %w", err)
	}

	return changed, nil
}

// uniqueEntries keeps the first entry for each ID.
func uniqueEntries(feedURL string, entries []Entry) []Entry {
	ids := make(map[string]struct{}, len(entries))
	unique := make([]Entry, 0, len(entries))

	for _, e := range entries {
		if _, dup := ids[e.ID]; dup {
			slog.Warn("Skipping entry with duplicate ID", "feed_url", feedURL, "id", e.ID, "title", e.Title)
			continue
		}
		ids[e.ID] = struct{}{}
		unique = append(unique, e)
	}
	return unique
}

func (r *entryRepository) GetEntries(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("*").From("entries")

	if filter.FeedURL != "" {
		sb.Where(sb.Equal("feed_url", filter.FeedURL))
	}
	if filter.UnreadOnly {
		sb.Where(sb.Equal("read", 0))
	}

	sb.OrderBy("feed_url", "COALESCE(published_at, updated_at, first_seen_at) DESC", "id")

	if filter.Limit > 0 {
		sb.Limit(filter.Limit)
	}

	query, args := sb.Build()

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}
	return entries, nil
}

// GetEntryStats returns the total and unread entry counts for a feed.
func (r *entryRepository) GetEntryStats(ctx context.Context, feedURL string) (int, int, error) {
	var stats struct {
		Total  int `db:"total"`
		Unread int `db:"unread"`
	}

	err := r.db.GetContext(ctx, &stats, `
		SELECT COUNT(*) AS total, COALESCE(SUM(CASE WHEN read = 0 THEN 1 ELSE 0 END), 0) AS unread
		FROM entries WHERE feed_url = ?
	`, feedURL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get entry stats: %w", err)
	}

	return stats.Total, stats.Unread, nil
}

func (r *entryRepository) MarkRead(ctx context.Context, keys []EntryKey) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE entries SET read = 1 WHERE feed_url = ? AND id = ? AND read = 0`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	var marked int64
	for _, key := range keys {
		res, err := stmt.ExecContext(ctx, key.FeedURL, key.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to mark entry %s read: %w", key.ID, err)
		}
		n, _ := res.RowsAffected()
		marked += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit read state: %w", err)
	}
	return marked, nil
}

func (r *entryRepository) MarkFeedRead(ctx context.Context, feedURL string) (int64, error) {
	ub := sqlbuilder.SQLite.NewUpdateBuilder()
	ub.Update("entries").
		Set(ub.Assign("read", 1)).
		Where(ub.Equal("feed_url", feedURL), ub.Equal("read", 0))
	query, args := ub.Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark feed read: %w", err)
	}
	return res.RowsAffected()
}
