package tasks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lysyi3m/rss-digest/app/database"
	"github.com/lysyi3m/rss-digest/app/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <item>
      <title>First</title>
      <link>https://example.com/1</link>
      <guid>1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Second</title>
      <link>https://example.com/2</link>
      <guid>2</guid>
    </item>
  </channel>
</rss>`

type taskFixture struct {
	feeds   database.FeedRepository
	entries database.EntryRepository
	fetcher *feed.Fetcher
	parser  *feed.Parser
}

func newTaskFixture(t *testing.T, urls ...string) *taskFixture {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "entries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &taskFixture{
		feeds:   database.NewFeedRepository(db),
		entries: database.NewEntryRepository(db),
		fetcher: feed.NewFetcher(nil, "rss-digest-test", 5*time.Second),
		parser:  feed.NewParser(),
	}

	for _, url := range urls {
		_, err := f.feeds.AddFeed(context.Background(), url)
		require.NoError(t, err)
	}
	return f
}

func (f *taskFixture) task(url string, retries int) *UpdateFeedTask {
	task := NewUpdateFeedTask(url, f.fetcher, f.parser, f.feeds, f.entries, retries)
	task.BackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return task
}

func TestUpdateFeedTaskStoresEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testRSS))
	}))
	defer server.Close()

	f := newTaskFixture(t, server.URL)

	outcome := f.task(server.URL, 0).Execute(context.Background())
	require.NoError(t, outcome.Err)
	assert.Equal(t, StatusUpdated, outcome.Status)
	assert.Equal(t, 2, outcome.NewEntries)

	stored, err := f.feeds.GetFeed(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Test Feed", stored.Title)
	assert.False(t, stored.LastRetrievedAt.IsZero())

	outcome = f.task(server.URL, 0).Execute(context.Background())
	assert.Equal(t, StatusUnchanged, outcome.Status)
	assert.Equal(t, 0, outcome.NewEntries)
}

func TestUpdateFeedTaskRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(testRSS))
	}))
	defer server.Close()

	f := newTaskFixture(t, server.URL)

	outcome := f.task(server.URL, 3).Execute(context.Background())
	require.NoError(t, outcome.Err)
	assert.Equal(t, StatusUpdated, outcome.Status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestUpdateFeedTaskDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTaskFixture(t, server.URL)

	outcome := f.task(server.URL, 3).Execute(context.Background())
	assert.Equal(t, StatusError, outcome.Status)
	assert.Equal(t, int32(1), calls.Load())

	var statusErr *feed.StatusError
	require.ErrorAs(t, outcome.Err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	stored, err := f.feeds.GetFeed(context.Background(), server.URL)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.LastError)
}

func TestUpdateFeedTaskInvalidFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed"))
	}))
	defer server.Close()

	f := newTaskFixture(t, server.URL)

	outcome := f.task(server.URL, 0).Execute(context.Background())
	assert.Equal(t, StatusError, outcome.Status)
	assert.Error(t, outcome.Err)
}

func TestUpdateFeedTaskCancelled(t *testing.T) {
	f := newTaskFixture(t, "https://unused.example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := f.task("https://unused.example.com", 0).Execute(ctx)
	assert.Equal(t, StatusError, outcome.Status)
	assert.ErrorIs(t, outcome.Err, context.Canceled)
}
