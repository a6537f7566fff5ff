package digest

import (
	"time"

	"github.com/lysyi3m/rss-digest/app/database"
	"github.com/samber/lo"
)

type ContentResult struct {
	Value    string
	Type     string
	Language string
}

type EntryResult struct {
	ID        string
	Title     string
	Link      string
	Author    string
	Published *time.Time
	Updated   *time.Time
	Summary   string
	Content   []ContentResult
}

func newEntryResult(e database.Entry) EntryResult {
	return EntryResult{
		ID:        e.ID,
		Title:     e.Title,
		Link:      e.Link,
		Author:    e.Author,
		Published: e.PublishedAt.Ptr(),
		Updated:   e.UpdatedAt.Ptr(),
		Summary:   e.Summary,
		Content: lo.Map(e.Content, func(c database.Content, _ int) ContentResult {
			return ContentResult{Value: c.Value, Type: c.Type, Language: c.Language}
		}),
	}
}

// FeedResult is one feed in the digest. Entries holds every unread entry;
// MaxVisible limits how many are shown (0 shows all).
type FeedResult struct {
	URL           string
	Title         string
	Link          string
	Author        string
	Category      string
	Updated       *time.Time
	LastRetrieved *time.Time
	LastError     string
	Entries       []EntryResult
	MaxVisible    int
}

func (f FeedResult) AllEntries() []EntryResult {
	return f.Entries
}

func (f FeedResult) VisibleEntries() []EntryResult {
	return limit(f.Entries, f.MaxVisible)
}

func (f FeedResult) AllEntriesCount() int {
	return len(f.Entries)
}

func (f FeedResult) VisibleEntriesCount() int {
	return len(f.VisibleEntries())
}

func (f FeedResult) InvisibleEntriesCount() int {
	return f.AllEntriesCount() - f.VisibleEntriesCount()
}

// CategoryResult partitions the feeds of one category. Name is empty for
// the uncategorized bucket; DisplayName is what templates should print.
type CategoryResult struct {
	Name         string
	DisplayName  string
	UpdatedFeeds []FeedResult
	ErrorFeeds   []FeedResult
	OtherFeeds   []FeedResult
	MaxVisible   int
}

func (c CategoryResult) IsUncategorized() bool {
	return c.Name == ""
}

func (c CategoryResult) AllUpdatedFeeds() []FeedResult {
	return c.UpdatedFeeds
}

func (c CategoryResult) VisibleUpdatedFeeds() []FeedResult {
	return limit(c.UpdatedFeeds, c.MaxVisible)
}

func (c CategoryResult) AllUpdatedFeedsCount() int {
	return len(c.UpdatedFeeds)
}

func (c CategoryResult) VisibleUpdatedFeedsCount() int {
	return len(c.VisibleUpdatedFeeds())
}

func (c CategoryResult) InvisibleUpdatedFeedsCount() int {
	return c.AllUpdatedFeedsCount() - c.VisibleUpdatedFeedsCount()
}

func (c CategoryResult) ErrorFeedsCount() int {
	return len(c.ErrorFeeds)
}

func (c CategoryResult) OtherFeedsCount() int {
	return len(c.OtherFeeds)
}

func limit[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
