package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/profile"
	"github.com/lysyi3m/rss-digest/app/subscriptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedXML = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>CLI Feed</title>
    <item><title>Fresh entry</title><guid>fresh</guid></item>
  </channel>
</rss>`

type harness struct {
	t         *testing.T
	configDir string
	dataDir   string
	senders   digest.Senders
}

func newHarness(t *testing.T) *harness {
	root := t.TempDir()
	return &harness{t: t, configDir: filepath.Join(root, "config"), dataDir: filepath.Join(root, "data")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()

	var buf bytes.Buffer
	base := []string{"--config-dir", h.configDir, "--data-dir", h.dataDir, "--worker-count", "2"}
	app := New(&buf)
	app.Senders = h.senders
	err := app.Run(context.Background(), append(base, args...))
	return buf.String(), err
}

func TestProfileCommands(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("profile", "add", "alice", "--name", "Alice", "--email", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Profile alice created\n", out)

	_, err = h.run("profile", "add", "alice")
	assert.ErrorIs(t, err, profile.ErrProfileExists)

	_, err = h.run("profile", "add", "../bad")
	assert.ErrorIs(t, err, profile.ErrInvalidName)

	out, err = h.run("profile", "list")
	require.NoError(t, err)
	assert.Equal(t, "alice\n", out)

	require.NoError(t, func() error { _, err := h.run("profile", "delete", "alice"); return err }())

	out, err = h.run("profile", "list")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = h.run("profile", "delete", "alice")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestFeedAndRunCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	h := newHarness(t)

	_, err := h.run("profile", "add", "alice", "--name", "Alice")
	require.NoError(t, err)

	_, err = h.run("feed", "add", "alice", srv.URL, "--category", "Tech", "--fetch-title")
	require.NoError(t, err)

	_, err = h.run("feed", "add", "alice", "")
	assert.ErrorIs(t, err, subscriptions.ErrEmptyURL)

	out, err := h.run("feed", "list", "alice")
	require.NoError(t, err)
	assert.Equal(t, "Tech\n  CLI Feed <"+srv.URL+">\n", out)

	out, err = h.run("feed", "export", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, `xmlUrl="`+srv.URL+`"`)

	out, err = h.run("run", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Fresh entry")

	// The first run committed, so the entry is not repeated.
	out, err = h.run("run", "alice")
	require.NoError(t, err)
	assert.NotContains(t, out, "Fresh entry")

	_, err = h.run("run", "alice", "--method", "carrier-pigeon")
	assert.ErrorIs(t, err, digest.ErrBadConfiguration)

	_, err = h.run("run", "alice", "bob")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)

	_, err = h.run("feed", "delete", "alice")
	assert.ErrorIs(t, err, subscriptions.ErrIncompleteQuery)

	out, err = h.run("feed", "delete", "alice", "--category", "Tech")
	require.NoError(t, err)
	assert.Equal(t, "Deleted 1 feed(s)\n", out)

	out, err = h.run("feed", "list", "alice")
	require.NoError(t, err)
	assert.Empty(t, out)
}

type recordingSenders struct {
	mu   sync.Mutex
	sent []digest.Message
}

func (s *recordingSenders) Sender(method string) (digest.Sender, error) {
	return s, nil
}

func (s *recordingSenders) Send(ctx context.Context, msg digest.Message, settings digest.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func TestRunDeduplicatesProfiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	senders := &recordingSenders{}
	h := newHarness(t)
	h.senders = senders

	_, err := h.run("profile", "add", "alice")
	require.NoError(t, err)
	_, err = h.run("feed", "add", "alice", srv.URL)
	require.NoError(t, err)

	_, err = h.run("run", "alice", "alice", "alice")
	require.NoError(t, err)

	require.Len(t, senders.sent, 1)
	assert.Contains(t, senders.sent[0].Body, "Fresh entry")
}

func TestFeedImport(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("profile", "add", "alice")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "feeds.opml")
	list := subscriptions.New()
	require.NoError(t, list.AddFeed("https://a.example/rss", "A", ""))
	require.NoError(t, list.AddFeed("https://b.example/rss", "B", "News"))
	require.NoError(t, list.WriteFile(path))

	out, err := h.run("feed", "import", "alice", path, "--no-sync")
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 feed(s)\n", out)

	out, err = h.run("feed", "list", "alice")
	require.NoError(t, err)
	assert.Equal(t, "Uncategorized\n  A <https://a.example/rss>\nNews\n  B <https://b.example/rss>\n", out)
}

func TestHelp(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}
