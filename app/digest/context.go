package digest

import (
	"time"

	"github.com/samber/lo"
)

type ConfigContext struct {
	UserName          string
	Email             string
	MaxEntries        int
	MaxFeeds          int
	UncategorizedName string
	Language          string
}

// Context is the data handed to a template. Every aggregate is computed
// from Categories.
type Context struct {
	ProfileName          string
	UpdateTime           time.Time
	LastUpdate           *time.Time
	Categories           []CategoryResult
	Config               ConfigContext
	SubscribedFeedsCount int
	DateTime             DateTimeHelper
}

func (c *Context) AllUpdatedFeeds() []FeedResult {
	return lo.FlatMap(c.Categories, func(cat CategoryResult, _ int) []FeedResult {
		return cat.UpdatedFeeds
	})
}

func (c *Context) UpdatedFeedsCount() int {
	return len(c.AllUpdatedFeeds())
}

// UpdatedCategories returns the categories holding at least one updated feed.
func (c *Context) UpdatedCategories() []CategoryResult {
	return lo.Filter(c.Categories, func(cat CategoryResult, _ int) bool {
		return len(cat.UpdatedFeeds) > 0
	})
}

func (c *Context) UpdatedCategoriesCount() int {
	return len(c.UpdatedCategories())
}

func (c *Context) UpdatedEntriesCount() int {
	return lo.SumBy(c.AllUpdatedFeeds(), func(f FeedResult) int {
		return f.AllEntriesCount()
	})
}

func (c *Context) VisibleEntriesCount() int {
	return lo.SumBy(c.Categories, func(cat CategoryResult) int {
		return lo.SumBy(cat.VisibleUpdatedFeeds(), func(f FeedResult) int {
			return f.VisibleEntriesCount()
		})
	})
}

func (c *Context) ErrorFeeds() []FeedResult {
	return lo.FlatMap(c.Categories, func(cat CategoryResult, _ int) []FeedResult {
		return cat.ErrorFeeds
	})
}

func (c *Context) ErrorFeedsCount() int {
	return len(c.ErrorFeeds())
}

func (c *Context) OtherFeeds() []FeedResult {
	return lo.FlatMap(c.Categories, func(cat CategoryResult, _ int) []FeedResult {
		return cat.OtherFeeds
	})
}

func (c *Context) OtherFeedsCount() int {
	return len(c.OtherFeeds())
}

func (c *Context) OtherFeedTitles() []string {
	return lo.Map(c.OtherFeeds(), func(f FeedResult, _ int) string {
		return f.Title
	})
}

// HasCategories reports whether any updated feed belongs to a named category.
func (c *Context) HasCategories() bool {
	updated := c.UpdatedCategories()
	return len(updated) > 1 || (len(updated) == 1 && !updated[0].IsUncategorized())
}

// DateTimeHelper formats times in the profile's time zone. Its methods
// accept time.Time or *time.Time; a nil or zero time formats as "".
type DateTimeHelper struct {
	Location   *time.Location
	DateFormat string
	TimeFormat string
}

func (h DateTimeHelper) Local(v any) *time.Time {
	t, ok := asTime(v)
	if !ok {
		return nil
	}
	if h.Location != nil {
		t = t.In(h.Location)
	}
	return &t
}

func (h DateTimeHelper) format(v any, layout string) string {
	t := h.Local(v)
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func (h DateTimeHelper) Date(v any) string {
	return h.format(v, h.DateFormat)
}

func (h DateTimeHelper) Time(v any) string {
	return h.format(v, h.TimeFormat)
}

func (h DateTimeHelper) DateTime(v any) string {
	return h.format(v, h.DateFormat+" "+h.TimeFormat)
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}
