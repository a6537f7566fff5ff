package digest

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/lysyi3m/rss-digest/app/database"
	"github.com/lysyi3m/rss-digest/app/subscriptions"
	"github.com/lysyi3m/rss-digest/app/tasks"
)

type FeedSyncer interface {
	AddFeed(ctx context.Context, url string) (bool, error)
	RemoveFeed(ctx context.Context, url string) (bool, error)
	ListFeeds(ctx context.Context) ([]string, error)
}

type EntryStore interface {
	FeedSyncer
	Feed(ctx context.Context, url string) (*database.Feed, error)
	UpdateAll(ctx context.Context) ([]tasks.Outcome, error)
	UnreadEntries(ctx context.Context) (map[string][]database.Entry, error)
	MarkRead(ctx context.Context, entries []database.Entry) error
}

// Settings is a read-only view of profile configuration. Absent keys
// report false.
type Settings interface {
	String(key string) (string, bool)
	Int(key string) (int, bool)
}

// Target is the profile a digest is assembled for.
type Target interface {
	Name() string
	Subscriptions() *subscriptions.List
	Settings() Settings
	EntryStore(ctx context.Context) (EntryStore, error)
	LastDigest() (*time.Time, error)
	SetLastDigest(t time.Time) error
}

type Renderer interface {
	Render(ctx context.Context, templateID string, c *Context) (string, error)
	ContentType(templateID string) string
}

type Sender interface {
	Send(ctx context.Context, msg Message, settings Settings) error
}

type Senders interface {
	Sender(method string) (Sender, error)
}
