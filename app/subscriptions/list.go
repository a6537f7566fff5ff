package subscriptions

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// List is an ordered, category-partitioned set of subscriptions. A feed URL
// appears at most once across all categories.
type List struct {
	Title        string
	DateModified *time.Time

	categories []*Category
	byName     map[string]int
	byURL      map[string]Feed
}

func New() *List {
	l := &List{
		byName: make(map[string]int),
		byURL:  make(map[string]Feed),
	}
	l.appendCategory(Uncategorized)
	return l
}

func (l *List) appendCategory(name string) *Category {
	c := &Category{Name: name}
	l.byName[name] = len(l.categories)
	l.categories = append(l.categories, c)
	return c
}

func (l *List) AddCategory(name string) error {
	if _, ok := l.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrCategoryExists, name)
	}
	l.appendCategory(name)
	return nil
}

// AddFeed appends a feed to category, creating the category at the end of
// the list if needed.
func (l *List) AddFeed(url, title, category string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w (title %q)", ErrEmptyURL, title)
	}
	if existing, ok := l.byURL[url]; ok {
		return fmt.Errorf("%w: %s (in category %q)", ErrFeedExists, url, existing.Category)
	}

	c := l.category(category)
	if c == nil {
		c = l.appendCategory(category)
	}

	f := Feed{XMLURL: url, Title: title, Category: category}
	c.Feeds = append(c.Feeds, f)
	l.byURL[url] = f

	return nil
}

// RemoveFeeds removes every feed matching q and returns how many were
// removed. A literal category restricts the search to that category.
// Named categories left empty are pruned.
func (l *List) RemoveFeeds(q Query) (int, error) {
	if !q.Complete() {
		return 0, fmt.Errorf("%w (%s)", ErrIncompleteQuery, q)
	}

	searched := l.categories
	if name, ok := q.Category.Value(); ok {
		c := l.category(name)
		if c == nil {
			return 0, fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
		}
		searched = []*Category{c}
	}

	removed := 0
	for _, c := range searched {
		kept := make([]Feed, 0, len(c.Feeds))
		for _, f := range c.Feeds {
			if q.Matches(f) {
				delete(l.byURL, f.XMLURL)
				removed++
				continue
			}
			kept = append(kept, f)
		}
		c.Feeds = kept
	}

	l.prune()

	slog.Debug("Feeds removed from subscriptions", "query", q.String(), "removed", removed)

	return removed, nil
}

// Find returns the feeds matching q in list order.
func (l *List) Find(q Query) ([]Feed, error) {
	if !q.Complete() {
		return nil, fmt.Errorf("%w (%s)", ErrIncompleteQuery, q)
	}

	var found []Feed
	for _, c := range l.categories {
		for _, f := range c.Feeds {
			if q.Matches(f) {
				found = append(found, f)
			}
		}
	}
	return found, nil
}

func (l *List) prune() {
	kept := l.categories[:0]
	for _, c := range l.categories {
		if len(c.Feeds) == 0 && !c.IsUncategorized() {
			slog.Debug("Pruning empty category", "category", c.Name)
			continue
		}
		kept = append(kept, c)
	}
	clear(l.categories[len(kept):])
	l.categories = kept

	l.byName = make(map[string]int, len(l.categories))
	for i, c := range l.categories {
		l.byName[c.Name] = i
	}
}

func (l *List) category(name string) *Category {
	i, ok := l.byName[name]
	if !ok {
		return nil
	}
	return l.categories[i]
}

// Category returns a copy of the named category.
func (l *List) Category(name string) (Category, bool) {
	c := l.category(name)
	if c == nil {
		return Category{}, false
	}
	return *c.clone(), true
}

func (l *List) CategoryNames() []string {
	names := make([]string, 0, len(l.categories))
	for _, c := range l.categories {
		names = append(names, c.Name)
	}
	return names
}

// Categories returns copies of all categories in order.
func (l *List) Categories() []Category {
	categories := make([]Category, 0, len(l.categories))
	for _, c := range l.categories {
		categories = append(categories, *c.clone())
	}
	return categories
}

// Feeds returns every feed, category by category.
func (l *List) Feeds() []Feed {
	feeds := make([]Feed, 0, len(l.byURL))
	for _, c := range l.categories {
		feeds = append(feeds, c.Feeds...)
	}
	return feeds
}

func (l *List) URLs() []string {
	urls := make([]string, 0, len(l.byURL))
	for _, c := range l.categories {
		urls = append(urls, c.URLs()...)
	}
	return urls
}

func (l *List) Len() int {
	return len(l.byURL)
}

func (l *List) FeedByURL(url string) (Feed, bool) {
	f, ok := l.byURL[url]
	return f, ok
}

func (l *List) Contains(url string) bool {
	_, ok := l.byURL[url]
	return ok
}

// SortByCategory groups urls by the category of their feed. The returned
// names are in first-seen order.
func (l *List) SortByCategory(urls []string) ([]string, map[string][]string, error) {
	var names []string
	grouped := make(map[string][]string)

	for _, url := range urls {
		f, ok := l.byURL[url]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrFeedNotFound, url)
		}
		if _, seen := grouped[f.Category]; !seen {
			names = append(names, f.Category)
		}
		grouped[f.Category] = append(grouped[f.Category], url)
	}

	return names, grouped, nil
}

// Copy returns a deep copy sharing no mutable state with l.
func (l *List) Copy() *List {
	cp := &List{
		Title:      l.Title,
		categories: make([]*Category, 0, len(l.categories)),
		byName:     make(map[string]int, len(l.byName)),
		byURL:      make(map[string]Feed, len(l.byURL)),
	}

	if l.DateModified != nil {
		t := *l.DateModified
		cp.DateModified = &t
	}

	for i, c := range l.categories {
		cp.categories = append(cp.categories, c.clone())
		cp.byName[c.Name] = i
	}
	for url, f := range l.byURL {
		cp.byURL[url] = f
	}

	return cp
}

// Equal reports whether both lists hold the same categories and feeds in the
// same order. Title and DateModified are not compared.
func (l *List) Equal(other *List) bool {
	if len(l.categories) != len(other.categories) || len(l.byURL) != len(other.byURL) {
		return false
	}
	for i, c := range l.categories {
		oc := other.categories[i]
		if c.Name != oc.Name || len(c.Feeds) != len(oc.Feeds) {
			return false
		}
		for j := range c.Feeds {
			if c.Feeds[j] != oc.Feeds[j] {
				return false
			}
		}
	}
	return true
}
