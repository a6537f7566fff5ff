package feed

import (
	"time"
)

type Metadata struct {
	Title       string
	Link        string
	Description string
	Author      string
	Language    string
	ImageURL    string
	UpdatedAt   *time.Time
}

type Content struct {
	Value    string
	Type     string
	Language string
}

type Item struct {
	GUID        string
	Title       string
	Link        string
	Authors     []string // "email (name)", "name" or "email"
	Summary     string
	Content     []Content
	Categories  []string
	PublishedAt *time.Time
	UpdatedAt   *time.Time

	ContentHash string
}

func (i Item) Author() string {
	if len(i.Authors) == 0 {
		return ""
	}
	return i.Authors[0]
}
