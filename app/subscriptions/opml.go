package subscriptions

import (
	"cmp"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	outlineCategory = "category"
	outlineRSS      = "rss"
)

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

type opmlDocument struct {
	XMLName xml.Name  `xml:"opml"`
	Version string    `xml:"version,attr"`
	Head    *opmlHead `xml:"head"`
	Body    *opmlBody `xml:"body"`
}

type opmlHead struct {
	Title        string `xml:"title,omitempty"`
	DateModified string `xml:"dateModified,omitempty"`
}

type opmlBody struct {
	Outlines []outline `xml:"outline"`
}

type outline struct {
	Type     string    `xml:"type,attr,omitempty"`
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Outlines []outline `xml:"outline"`
}

func (o outline) kind() string {
	switch {
	case o.Type != "":
		return strings.ToLower(o.Type)
	case o.XMLURL != "":
		return outlineRSS
	default:
		return outlineCategory
	}
}

func (o outline) name() string {
	return cmp.Or(o.Text, o.Title)
}

// Parse reads an OPML document. Categories nested inside other categories
// are flattened into the outermost one.
func Parse(r io.Reader) (*List, error) {
	var doc opmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	if doc.Body == nil {
		return nil, fmt.Errorf("%w: no body element", ErrBadFormat)
	}

	l := New()

	if doc.Head != nil {
		l.Title = doc.Head.Title
		if doc.Head.DateModified != "" {
			if t, ok := parseDate(doc.Head.DateModified); ok {
				l.DateModified = &t
			} else {
				slog.Warn("Ignoring unparseable dateModified", "value", doc.Head.DateModified)
			}
		}
	}

	for _, o := range doc.Body.Outlines {
		switch o.kind() {
		case outlineCategory:
			name := o.name()
			if l.category(name) == nil {
				l.appendCategory(name)
			}
			l.addOutlines(o.Outlines, name)
		case outlineRSS:
			l.addOutline(o, Uncategorized)
		default:
			slog.Warn("Ignoring outline of unknown type", "type", o.Type, "text", o.Text)
		}
	}

	return l, nil
}

func (l *List) addOutlines(outlines []outline, category string) {
	for _, o := range outlines {
		switch o.kind() {
		case outlineCategory:
			l.addOutlines(o.Outlines, category)
		case outlineRSS:
			l.addOutline(o, category)
		default:
			slog.Warn("Ignoring outline of unknown type", "type", o.Type, "text", o.Text)
		}
	}
}

func (l *List) addOutline(o outline, category string) {
	if o.XMLURL == "" {
		slog.Warn("Ignoring feed outline without xmlUrl", "text", o.Text)
		return
	}
	if o.name() == "" {
		slog.Warn("Feed outline has neither text nor title", "url", o.XMLURL)
	}
	if err := l.AddFeed(o.XMLURL, o.name(), category); err != nil {
		slog.Warn("Skipping duplicate feed", "url", o.XMLURL, "category", category, "error", err)
	}
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseFile reads the OPML file at path. A missing file yields an empty list.
func ParseFile(path string) (*List, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Subscriptions file not found, starting empty", "path", path)
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open subscriptions file: %w", err)
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func (l *List) document() opmlDocument {
	doc := opmlDocument{
		Version: "1.0",
		Head:    &opmlHead{Title: l.Title},
		Body:    &opmlBody{},
	}

	if l.DateModified != nil {
		doc.Head.DateModified = l.DateModified.Format(time.RFC1123Z)
	}

	for _, c := range l.categories {
		feeds := make([]outline, 0, len(c.Feeds))
		for _, f := range c.Feeds {
			feeds = append(feeds, outline{
				Type:   outlineRSS,
				Text:   f.Title,
				Title:  f.Title,
				XMLURL: f.XMLURL,
			})
		}

		if c.IsUncategorized() {
			doc.Body.Outlines = append(doc.Body.Outlines, feeds...)
			continue
		}

		doc.Body.Outlines = append(doc.Body.Outlines, outline{
			Type:     outlineCategory,
			Text:     c.Name,
			Outlines: feeds,
		})
	}

	return doc
}

// Write serializes the list as OPML.
func (l *List) Write(w io.Writer) error {
	output, err := xml.MarshalIndent(l.document(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode OPML: %w", err)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(output); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// WriteFile replaces the file at path with the serialized list.
func (l *List) WriteFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".feeds-*.opml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := l.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace subscriptions file: %w", err)
	}
	return nil
}
