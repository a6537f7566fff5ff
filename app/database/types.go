package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UnixTime is a nullable timestamp stored as Unix milliseconds. The zero
// value maps to NULL.
type UnixTime struct {
	time.Time
}

func NewUnixTime(t *time.Time) UnixTime {
	if t == nil {
		return UnixTime{}
	}
	return UnixTime{Time: t.UTC()}
}

func (t *UnixTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case int64:
		t.Time = time.UnixMilli(v).UTC()
	default:
		return fmt.Errorf("cannot scan %T into UnixTime", src)
	}
	return nil
}

func (t UnixTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UnixMilli(), nil
}

// Ptr returns nil for the zero time.
func (t UnixTime) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

type Content struct {
	Value    string `json:"value"`
	Type     string `json:"type,omitempty"`
	Language string `json:"language,omitempty"`
}

// Contents is stored as a JSON array.
type Contents []Content

func (c *Contents) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Contents", src)
	}
	return json.Unmarshal(data, c)
}

func (c Contents) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

type Feed struct {
	URL             string   `db:"url"`
	Title           string   `db:"title"`
	Link            string   `db:"link"`
	Author          string   `db:"author"`
	UpdatedAt       UnixTime `db:"updated_at"`
	LastRetrievedAt UnixTime `db:"last_retrieved_at"`
	LastError       string   `db:"last_error"`
	AddedAt         UnixTime `db:"added_at"`
}

type FeedMetadata struct {
	Title     string
	Link      string
	Author    string
	UpdatedAt *time.Time
}

type Entry struct {
	FeedURL       string   `db:"feed_url"`
	ID            string   `db:"id"`
	Title         string   `db:"title"`
	Link          string   `db:"link"`
	Author        string   `db:"author"`
	Summary       string   `db:"summary"`
	Content       Contents `db:"content"`
	PublishedAt   UnixTime `db:"published_at"`
	UpdatedAt     UnixTime `db:"updated_at"`
	ContentHash   string   `db:"content_hash"`
	Read          bool     `db:"read"`
	FirstSeenAt   UnixTime `db:"first_seen_at"`
	LastUpdatedAt UnixTime `db:"last_updated_at"`
}

func (e Entry) Key() EntryKey {
	return EntryKey{FeedURL: e.FeedURL, ID: e.ID}
}

type EntryKey struct {
	FeedURL string
	ID      string
}

type EntryFilter struct {
	FeedURL    string
	UnreadOnly bool
	Limit      int
}
