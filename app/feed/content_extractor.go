package feed

import (
	"log/slog"
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "article": true, "section": true,
}

// ContentExtractor turns HTML from feed entries into plain text.
type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Text returns the readable text of data. Complete documents go through
// readability; fragments and documents it rejects are reduced to their text
// nodes.
func (e *ContentExtractor) Text(data string) string {
	if strings.TrimSpace(data) == "" {
		return ""
	}

	if isDocument(data) {
		article, err := readability.FromReader(strings.NewReader(data), nil)
		if err == nil && strings.TrimSpace(article.TextContent) != "" {
			slog.Debug("Content extracted successfully",
				"title", article.Title,
				"content_length", len(article.TextContent))
			return collapseSpace(article.TextContent)
		}
		slog.Debug("Readability extraction failed, using text nodes", "error", err)
	}

	return textNodes(data)
}

func isDocument(data string) bool {
	head := strings.ToLower(data[:min(len(data), 512)])
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}

func textNodes(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapseSpace(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch tag := string(name); {
			case tag == "script" || tag == "style":
				skip++
			case blockTags[tag]:
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch tag := string(name); {
			case tag == "script" || tag == "style":
				skip = max(skip-1, 0)
			case blockTags[tag]:
				b.WriteByte(' ')
			}
		}
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
