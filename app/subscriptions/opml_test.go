package subscriptions

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="1.0">
  <head>
    <title>My feeds</title>
    <dateModified>Mon, 03 Jul 2023 12:00:00 +0000</dateModified>
  </head>
  <body>
    <outline type="rss" text="Loose Feed" xmlUrl="https://loose.example.com/rss"/>
    <outline type="category" text="Tech">
      <outline type="rss" text="Go Blog" xmlUrl="https://go.dev/blog/feed.atom"/>
      <outline type="category" text="Nested">
        <outline type="rss" title="Only Title" xmlUrl="https://nested.example.com/rss"/>
      </outline>
      <outline type="link" text="Not a feed" url="https://example.com"/>
    </outline>
    <outline text="Untyped">
      <outline type="rss" xmlUrl="https://untitled.example.com/rss"/>
    </outline>
    <outline type="category" text="Tech">
      <outline type="rss" text="Merged" xmlUrl="https://merged.example.com/rss"/>
    </outline>
  </body>
</opml>`

func TestParse(t *testing.T) {
	l, err := Parse(strings.NewReader(sampleOPML))
	require.NoError(t, err)

	assert.Equal(t, "My feeds", l.Title)
	require.NotNil(t, l.DateModified)
	assert.True(t, l.DateModified.Equal(time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)))

	assert.Equal(t, []string{"", "Tech", "Untyped"}, l.CategoryNames())
	assert.Equal(t, 5, l.Len())

	tech, ok := l.Category("Tech")
	require.True(t, ok)
	assert.Equal(t, []string{
		"https://go.dev/blog/feed.atom",
		"https://nested.example.com/rss",
		"https://merged.example.com/rss",
	}, tech.URLs())

	nested, _ := l.FeedByURL("https://nested.example.com/rss")
	assert.Equal(t, "Only Title", nested.Title)
	assert.Equal(t, "Tech", nested.Category)

	untitled, _ := l.FeedByURL("https://untitled.example.com/rss")
	assert.Equal(t, "", untitled.Title)
	assert.Equal(t, "Untyped", untitled.Category)

	loose, _ := l.FeedByURL("https://loose.example.com/rss")
	assert.Equal(t, Uncategorized, loose.Category)
}

func TestParseMissingBody(t *testing.T) {
	_, err := Parse(strings.NewReader(`<opml version="1.0"><head><title>x</title></head></opml>`))
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestParseMalformedXML(t *testing.T) {
	_, err := Parse(strings.NewReader(`<opml><body><outline`))
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestParseEmptyBody(t *testing.T) {
	l, err := Parse(strings.NewReader(`<opml version="1.0"><body/></opml>`))
	require.NoError(t, err)
	assert.Equal(t, []string{""}, l.CategoryNames())
	assert.Equal(t, 0, l.Len())
}

func TestParseDuplicateURLKeepsFirst(t *testing.T) {
	doc := `<opml version="1.0"><body>
  <outline type="rss" text="First" xmlUrl="https://dup"/>
  <outline type="category" text="Later">
    <outline type="rss" text="Second" xmlUrl="https://dup"/>
  </outline>
</body></opml>`

	l, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	f, ok := l.FeedByURL("https://dup")
	require.True(t, ok)
	assert.Equal(t, "First", f.Title)
	assert.Equal(t, 1, l.Len())
}

func TestParseFileMissing(t *testing.T) {
	l, err := ParseFile(filepath.Join(t.TempDir(), "feeds.opml"))
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, []string{""}, l.CategoryNames())
}

func TestWriteLayout(t *testing.T) {
	l := New()
	require.NoError(t, l.AddFeed("https://b", "B", "Cat"))
	require.NoError(t, l.AddFeed("https://a", "A & Co", ""))

	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<outline type="rss" text="A &amp; Co" title="A &amp; Co" xmlUrl="https://a">`)
	assert.Contains(t, out, `<outline type="category" text="Cat">`)
	assert.Less(t, strings.Index(out, "https://a"), strings.Index(out, `text="Cat"`))
}

func TestRoundTrip(t *testing.T) {
	modified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	l := New()
	l.Title = "Round trip"
	l.DateModified = &modified
	require.NoError(t, l.AddFeed("https://u1", "Feed One", "Econ"))
	require.NoError(t, l.AddFeed("https://u2", "Feed Two", ""))
	require.NoError(t, l.AddFeed("https://u3", "", "Law"))
	require.NoError(t, l.AddFeed("https://u4", "Feed Four", "Econ"))

	path := filepath.Join(t.TempDir(), "sub", "feeds.opml")
	require.NoError(t, l.WriteFile(path))

	parsed, err := ParseFile(path)
	require.NoError(t, err)

	assert.True(t, l.Equal(parsed))
	assert.Equal(t, l.CategoryNames(), parsed.CategoryNames())
	assert.Equal(t, l.Feeds(), parsed.Feeds())
	assert.Equal(t, "Round trip", parsed.Title)
	require.NotNil(t, parsed.DateModified)
	assert.True(t, modified.Equal(*parsed.DateModified))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRoundTripAfterRejectedEmptyURL(t *testing.T) {
	l := New()
	require.NoError(t, l.AddFeed("https://u1", "Feed One", "Econ"))
	require.ErrorIs(t, l.AddFeed("", "Nameless", "Econ"), ErrEmptyURL)

	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.True(t, l.Equal(parsed))
	assert.Equal(t, 1, parsed.Len())
}
