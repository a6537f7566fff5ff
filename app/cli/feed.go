package cli

import (
	"cmp"
	"fmt"

	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/profile"
	"github.com/lysyi3m/rss-digest/app/subscriptions"
)

type feedAddCmd struct {
	Title      string `long:"title" description:"Feed title (default: empty, or the feed's own with --fetch-title)"`
	Category   string `long:"category" description:"Category to file the feed under (default: uncategorized)"`
	Test       bool   `long:"test" description:"Fetch the feed once and fail if it cannot be retrieved"`
	MarkRead   bool   `long:"mark-read" description:"Mark current entries read so only later ones are digested"`
	FetchTitle bool   `long:"fetch-title" description:"Use the feed's own title when --title is not given"`
	Args       struct {
		Profile string `positional-arg-name:"PROFILE" required:"yes"`
		URL     string `positional-arg-name:"URL" required:"yes"`
	} `positional-args:"yes"`

	app *App
}

func (c *feedAddCmd) Execute(args []string) error {
	p, err := c.app.loadProfile(c.Args.Profile)
	if err != nil {
		return err
	}
	defer p.Close()

	return p.AddFeed(c.app.ctx, c.Args.URL, c.Title, c.Category, profile.AddFeedOptions{
		Test:       c.Test,
		MarkRead:   c.MarkRead,
		FetchTitle: c.FetchTitle,
		Write:      true,
	})
}

type feedDeleteCmd struct {
	URL      *string `long:"url" description:"Delete the feed with this URL"`
	Title    *string `long:"title" description:"Delete feeds with this title"`
	Category *string `long:"category" description:"Only delete feeds in this category (\"\" for uncategorized)"`
	All      bool    `long:"all" description:"Delete every feed matching the other options, or every feed if none are given"`
	Args     struct {
		Profile string `positional-arg-name:"PROFILE" required:"yes"`
	} `positional-args:"yes"`

	app *App
}

func pattern(v *string) subscriptions.Pattern {
	if v == nil {
		return subscriptions.Any()
	}
	return subscriptions.Literal(*v)
}

func (c *feedDeleteCmd) query() (subscriptions.Query, error) {
	if c.URL == nil && c.Title == nil && c.Category == nil && !c.All {
		return subscriptions.Query{}, fmt.Errorf("%w: give --url, --title or --category, or --all to delete every feed",
			subscriptions.ErrIncompleteQuery)
	}
	return subscriptions.Query{URL: pattern(c.URL), Title: pattern(c.Title), Category: pattern(c.Category)}, nil
}

func (c *feedDeleteCmd) Execute(args []string) error {
	q, err := c.query()
	if err != nil {
		return err
	}

	p, err := c.app.loadProfile(c.Args.Profile)
	if err != nil {
		return err
	}
	defer p.Close()

	removed, err := p.DeleteFeeds(q, true)
	if err != nil {
		return err
	}
	if _, _, err := p.Sync(c.app.ctx); err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "Deleted %d feed(s)\n", removed)
	return nil
}

type feedListCmd struct {
	Args struct {
		Profile string `positional-arg-name:"PROFILE" required:"yes"`
	} `positional-args:"yes"`

	app *App
}

func (c *feedListCmd) Execute(args []string) error {
	p, err := c.app.loadProfile(c.Args.Profile)
	if err != nil {
		return err
	}

	uncategorized, _ := p.Settings().String("uncategorized_name")
	uncategorized = cmp.Or(uncategorized, digest.DefaultUncategorizedName)

	for _, cat := range p.List().Categories() {
		if len(cat.Feeds) == 0 {
			continue
		}

		name := cat.Name
		if cat.IsUncategorized() {
			name = uncategorized
		}
		fmt.Fprintln(c.app.out, name)

		for _, f := range cat.Feeds {
			fmt.Fprintf(c.app.out, "  %s <%s>\n", cmp.Or(f.Title, f.XMLURL), f.XMLURL)
		}
	}
	return nil
}

type feedImportCmd struct {
	NoSync bool `long:"no-sync" description:"Do not reconcile the entry store with the imported feeds"`
	Args   struct {
		Profile string `positional-arg-name:"PROFILE" required:"yes"`
		File    string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes"`

	app *App
}

func (c *feedImportCmd) Execute(args []string) error {
	p, err := c.app.loadProfile(c.Args.Profile)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.SetOPMLFile(c.app.ctx, c.Args.File, !c.NoSync); err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "Imported %d feed(s)\n", p.List().Len())
	return nil
}

type feedExportCmd struct {
	Output string `short:"o" long:"output" description:"Write to this file instead of standard output"`
	Args   struct {
		Profile string `positional-arg-name:"PROFILE" required:"yes"`
	} `positional-args:"yes"`

	app *App
}

func (c *feedExportCmd) Execute(args []string) error {
	p, err := c.app.loadProfile(c.Args.Profile)
	if err != nil {
		return err
	}

	if c.Output != "" {
		return p.List().WriteFile(c.Output)
	}
	return p.List().Write(c.app.out)
}
