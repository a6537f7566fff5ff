package output

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContext() *digest.Context {
	published := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	last := time.Date(2024, 5, 31, 8, 0, 0, 0, time.UTC)

	return &digest.Context{
		ProfileName: "alice",
		UpdateTime:  time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		LastUpdate:  &last,
		Config: digest.ConfigContext{
			UserName:          "Alice",
			UncategorizedName: "Uncategorized",
		},
		SubscribedFeedsCount: 3,
		DateTime: digest.DateTimeHelper{
			Location:   time.UTC,
			DateFormat: "2006-01-02",
			TimeFormat: "15:04",
		},
		Categories: []digest.CategoryResult{
			{
				Name:        "",
				DisplayName: "Uncategorized",
				OtherFeeds:  []digest.FeedResult{{URL: "https://quiet", Title: "Quiet Feed"}},
			},
			{
				Name:        "Tech",
				DisplayName: "Tech",
				UpdatedFeeds: []digest.FeedResult{{
					URL:   "https://tech",
					Title: "Tech <News>",
					Link:  "https://tech.example.com",
					Entries: []digest.EntryResult{
						{ID: "1", Title: "First & best", Link: "https://tech.example.com/1", Published: &published, Summary: "<p>Hello <b>world</b></p>"},
						{ID: "2", Title: "Second", Link: "https://tech.example.com/2"},
					},
					MaxVisible: 1,
				}},
				ErrorFeeds: []digest.FeedResult{{URL: "https://broken", Title: "Broken Feed", LastError: "HTTP error: 500"}},
			},
		},
	}
}

func TestRenderBuiltinText(t *testing.T) {
	r := NewRenderer("", "", nil)

	out, err := r.Render(context.Background(), "digest.txt", sampleContext())
	require.NoError(t, err)

	assert.Contains(t, out, "Hello Alice,")
	assert.Contains(t, out, "There are 2 new entries in 1 feed since 2024-05-31 08:00.")
	assert.Contains(t, out, "== Tech ==")
	assert.Contains(t, out, "Tech <News> <https://tech.example.com>")
	assert.Contains(t, out, "  * First & best (2024-06-01)")
	assert.Contains(t, out, "    Hello world")
	assert.Contains(t, out, "... and 1 more")
	assert.NotContains(t, out, "Second")
	assert.Contains(t, out, "  - Broken Feed (https://broken)")
	assert.Contains(t, out, "No new entries: Quiet Feed")
}

func TestRenderBuiltinHTMLEscapes(t *testing.T) {
	r := NewRenderer("", "", nil)

	out, err := r.Render(context.Background(), "digest.html", sampleContext())
	require.NoError(t, err)

	assert.Contains(t, out, "<h2>Tech</h2>")
	assert.Contains(t, out, "Tech &lt;News&gt;")
	assert.Contains(t, out, "First &amp; best")
	assert.Contains(t, out, "HTTP error: 500")
	assert.Equal(t, "text/html; charset=utf-8", r.ContentType("digest.html"))
	assert.Equal(t, "text/plain; charset=utf-8", r.ContentType("digest.txt"))
}

func TestRenderLookupOrder(t *testing.T) {
	profilesDir := t.TempDir()
	appDir := t.TempDir()

	profileTemplates := filepath.Join(profilesDir, "alice", "templates")
	require.NoError(t, os.MkdirAll(profileTemplates, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(appDir, "digest.txt"), []byte("app {{.ProfileName}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "short.txt"), []byte("app short"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(profileTemplates, "short.txt"), []byte("profile {{number .SubscribedFeedsCount}}"), 0o644))

	r := NewRenderer(profilesDir, appDir, nil)
	c := sampleContext()

	out, err := r.Render(context.Background(), "short.txt", c)
	require.NoError(t, err)
	assert.Equal(t, "profile 3", out)

	out, err = r.Render(context.Background(), "digest.txt", c)
	require.NoError(t, err)
	assert.Equal(t, "app alice", out)

	out, err = r.Render(context.Background(), "digest.html", c)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

func TestRenderTemplateNotFound(t *testing.T) {
	r := NewRenderer(t.TempDir(), t.TempDir(), nil)

	for _, id := range []string{"missing.txt", "../secret.txt", "", ".hidden"} {
		_, err := r.Render(context.Background(), id, sampleContext())
		assert.ErrorIs(t, err, ErrTemplateNotFound, id)
	}
}

func TestRenderNumberUsesLanguage(t *testing.T) {
	appDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "n.txt"), []byte("{{number 1234567}}"), 0o644))

	r := NewRenderer("", appDir, nil)
	c := sampleContext()

	out, err := r.Render(context.Background(), "n.txt", c)
	require.NoError(t, err)
	assert.Equal(t, "1,234,567", out)

	c.Config.Language = "de"
	out, err = r.Render(context.Background(), "n.txt", c)
	require.NoError(t, err)
	assert.Equal(t, "1.234.567", out)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "héllo…", truncate("héllo wörld", 5))
	assert.Equal(t, "unbounded", truncate("unbounded", 0))
}
