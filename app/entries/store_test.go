package entries

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/lysyi3m/rss-digest/app/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedXML = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Store Feed</title>
    <item><title>One</title><guid>one</guid><link>https://example.com/1</link></item>
    <item><title>Two</title><guid>two</guid><link>https://example.com/2</link></item>
  </channel>
</rss>`

func openStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(Options{
		Path:      filepath.Join(t.TempDir(), "entries.db"),
		Workers:   2,
		Timeout:   5 * time.Second,
		UserAgent: "rss-digest-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreUpdateAndMarkRead(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	defer ok.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer broken.Close()

	ctx := context.Background()
	store := openStore(t)

	for _, url := range []string{ok.URL, broken.URL} {
		added, err := store.AddFeed(ctx, url)
		require.NoError(t, err)
		require.True(t, added)
	}

	outcomes, err := store.UpdateAll(ctx)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	byURL := map[string]tasks.Outcome{}
	for _, o := range outcomes {
		byURL[o.URL] = o
	}
	assert.Equal(t, tasks.StatusUpdated, byURL[ok.URL].Status)
	assert.Equal(t, 2, byURL[ok.URL].NewEntries)
	assert.Equal(t, tasks.StatusError, byURL[broken.URL].Status)

	unread, err := store.UnreadEntries(ctx)
	require.NoError(t, err)
	require.Len(t, unread[ok.URL], 2)
	assert.Empty(t, unread[broken.URL])

	require.NoError(t, store.MarkRead(ctx, unread[ok.URL][:1]))

	unread, err = store.UnreadEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, unread[ok.URL], 1)

	require.NoError(t, store.MarkFeedRead(ctx, ok.URL))

	unread, err = store.UnreadEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, unread)

	outcome, err := store.UpdateFeed(ctx, ok.URL)
	require.NoError(t, err)
	assert.Equal(t, tasks.StatusUnchanged, outcome.Status)
}

func TestStoreUpdateUnknownFeed(t *testing.T) {
	store := openStore(t)

	_, err := store.UpdateFeed(context.Background(), "https://missing.example.com")
	assert.ErrorIs(t, err, ErrUnknownFeed)
}

func TestStoreAddRemoveList(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	_, err := store.AddFeed(ctx, "https://a")
	require.NoError(t, err)
	_, err = store.AddFeed(ctx, "https://b")
	require.NoError(t, err)

	removed, err := store.RemoveFeed(ctx, "https://a")
	require.NoError(t, err)
	assert.True(t, removed)

	urls, err := store.ListFeeds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://b"}, urls)

	f, err := store.Feed(ctx, "https://b")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "https://b", f.URL)
}
