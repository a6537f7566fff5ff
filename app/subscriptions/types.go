package subscriptions

// Uncategorized is the name of the bucket holding feeds that belong to no
// category. It always exists and is never pruned.
const Uncategorized = ""

// Feed is a single subscription. XMLURL is its identity.
type Feed struct {
	XMLURL   string
	Title    string
	Category string
}

type Category struct {
	Name  string
	Feeds []Feed
}

func (c Category) IsUncategorized() bool {
	return c.Name == Uncategorized
}

func (c Category) URLs() []string {
	urls := make([]string, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		urls = append(urls, f.XMLURL)
	}
	return urls
}

func (c Category) clone() *Category {
	feeds := make([]Feed, len(c.Feeds))
	copy(feeds, c.Feeds)
	return &Category{Name: c.Name, Feeds: feeds}
}
