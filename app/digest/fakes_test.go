package digest_test

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/lysyi3m/rss-digest/app/database"
	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/subscriptions"
	"github.com/lysyi3m/rss-digest/app/tasks"
)

type mapSettings map[string]string

func (s mapSettings) String(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

func (s mapSettings) Int(key string) (int, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// fakeStore keeps feeds and unread entries in memory. UpdateAll reports
// outcomes[url] for each tracked feed, or unchanged when none is set.
type fakeStore struct {
	feeds    []string
	titles   map[string]string
	outcomes map[string]tasks.Outcome
	skip     map[string]bool
	unread   map[string][]database.Entry
	marked   []database.Entry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		titles:   map[string]string{},
		outcomes: map[string]tasks.Outcome{},
		skip:     map[string]bool{},
		unread:   map[string][]database.Entry{},
	}
}

func (s *fakeStore) AddFeed(ctx context.Context, url string) (bool, error) {
	if slices.Contains(s.feeds, url) {
		return false, nil
	}
	s.feeds = append(s.feeds, url)
	return true, nil
}

func (s *fakeStore) RemoveFeed(ctx context.Context, url string) (bool, error) {
	i := slices.Index(s.feeds, url)
	if i < 0 {
		return false, nil
	}
	s.feeds = slices.Delete(s.feeds, i, i+1)
	delete(s.unread, url)
	return true, nil
}

func (s *fakeStore) ListFeeds(ctx context.Context) ([]string, error) {
	return slices.Clone(s.feeds), nil
}

func (s *fakeStore) Feed(ctx context.Context, url string) (*database.Feed, error) {
	if !slices.Contains(s.feeds, url) {
		return nil, nil
	}
	return &database.Feed{URL: url, Title: s.titles[url], Link: url + "/home"}, nil
}

func (s *fakeStore) UpdateAll(ctx context.Context) ([]tasks.Outcome, error) {
	var outcomes []tasks.Outcome
	for _, url := range s.feeds {
		if s.skip[url] {
			continue
		}
		o, ok := s.outcomes[url]
		if !ok {
			o = tasks.Outcome{Status: tasks.StatusUnchanged}
		}
		o.URL = url
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func (s *fakeStore) UnreadEntries(ctx context.Context) (map[string][]database.Entry, error) {
	unread := make(map[string][]database.Entry, len(s.unread))
	for url, entries := range s.unread {
		if len(entries) > 0 {
			unread[url] = slices.Clone(entries)
		}
	}
	return unread, nil
}

func (s *fakeStore) MarkRead(ctx context.Context, entries []database.Entry) error {
	s.marked = append(s.marked, entries...)
	for _, e := range entries {
		s.unread[e.FeedURL] = slices.DeleteFunc(s.unread[e.FeedURL], func(u database.Entry) bool {
			return u.ID == e.ID
		})
	}
	return nil
}

func (s *fakeStore) addUnread(url string, ids ...string) {
	for _, id := range ids {
		s.unread[url] = append(s.unread[url], database.Entry{FeedURL: url, ID: id, Title: "Entry " + id})
	}
}

type fakeTarget struct {
	name       string
	list       *subscriptions.List
	settings   mapSettings
	store      *fakeStore
	lastDigest *time.Time
}

func (t *fakeTarget) Name() string                       { return t.name }
func (t *fakeTarget) Subscriptions() *subscriptions.List { return t.list }
func (t *fakeTarget) Settings() digest.Settings          { return t.settings }

func (t *fakeTarget) EntryStore(ctx context.Context) (digest.EntryStore, error) {
	return t.store, nil
}

func (t *fakeTarget) LastDigest() (*time.Time, error) {
	return t.lastDigest, nil
}

func (t *fakeTarget) SetLastDigest(at time.Time) error {
	t.lastDigest = &at
	return nil
}
