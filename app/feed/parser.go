package feed

import (
	"bytes"
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []Item, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       strings.TrimSpace(feed.Title),
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
		UpdatedAt:   cmp.Or(feed.UpdatedParsed, feed.PublishedParsed),
	}

	if feed.Image != nil {
		metadata.ImageURL = feed.Image.URL
	}

	if authors := p.formatAuthors(feed.Authors, feed.Author); len(authors) > 0 {
		metadata.Author = authors[0]
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		normalized := p.normalizeItem(item, feed.Language)
		normalized.ContentHash = p.generateContentHash(normalized)
		items = append(items, normalized)
	}

	return metadata, items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item, language string) Item {
	normalized := Item{
		GUID:        cmp.Or(item.GUID, item.Link, item.Title),
		Title:       strings.TrimSpace(item.Title),
		Link:        item.Link,
		Summary:     item.Description,
		PublishedAt: item.PublishedParsed,
		UpdatedAt:   item.UpdatedParsed,
		Authors:     p.formatAuthors(item.Authors, item.Author),
	}

	if item.Content != "" {
		normalized.Content = []Content{{
			Value:    item.Content,
			Type:     "text/html",
			Language: language,
		}}
	}

	if item.Categories != nil {
		normalized.Categories = item.Categories
	}

	return normalized
}

func (p *Parser) generateContentHash(item Item) string {
	var content strings.Builder
	fmt.Fprintf(&content, "%s|%s|%s", item.Title, item.Link, item.Summary)
	for _, c := range item.Content {
		content.WriteString("|")
		content.WriteString(c.Value)
	}

	hash := sha256.Sum256([]byte(content.String()))
	return hex.EncodeToString(hash[:])
}

func (p *Parser) formatAuthors(people []*gofeed.Person, fallback *gofeed.Person) []string {
	var authors []string

	if len(people) == 0 && fallback != nil {
		people = []*gofeed.Person{fallback}
	}

	for _, person := range people {
		if person == nil {
			continue
		}
		if author := p.formatAuthor(person.Name, person.Email); author != "" {
			authors = append(authors, author)
		}
	}

	return authors
}

func (p *Parser) formatAuthor(name, email string) string {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name != "" && email != "" {
		return fmt.Sprintf("%s (%s)", email, name)
	} else if name != "" {
		return name
	} else if email != "" {
		return email
	}

	return ""
}
