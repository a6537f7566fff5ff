package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/jessevdk/go-flags"
	"github.com/lysyi3m/rss-digest/app/cfg"
	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/entries"
	"github.com/lysyi3m/rss-digest/app/feed"
	"github.com/lysyi3m/rss-digest/app/output"
	"github.com/lysyi3m/rss-digest/app/profile"
)

// App wires the command line to profiles and the digest pipeline.
type App struct {
	Options cfg.Options

	ctx context.Context
	out io.Writer
	// Senders overrides the output registry.
	Senders digest.Senders
}

func New(out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{out: &lockedWriter{w: out}}
}

// Run parses args and executes the selected command.
func (a *App) Run(ctx context.Context, args []string) error {
	a.ctx = ctx

	parser := flags.NewParser(&a.Options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "rss-digest"
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		if _, err := cfg.Load(&a.Options); err != nil {
			return err
		}
		return cmd.Execute(args)
	}

	if err := a.register(parser); err != nil {
		return err
	}

	_, err := parser.ParseArgs(args)

	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(a.out, flagsErr.Message)
		return nil
	}
	return err
}

func (a *App) register(parser *flags.Parser) error {
	profileCmd, err := parser.AddCommand("profile", "Manage profiles", "Add, delete and list profiles.", &struct{}{})
	if err != nil {
		return err
	}
	feedCmd, err := parser.AddCommand("feed", "Manage subscriptions", "Add, delete, list, import and export a profile's feeds.", &struct{}{})
	if err != nil {
		return err
	}

	commands := []struct {
		parent            *flags.Command
		name, short, long string
		data              any
	}{
		{profileCmd, "add", "Add a profile", "Create a profile with empty subscriptions.", &profileAddCmd{app: a}},
		{profileCmd, "delete", "Delete a profile", "Delete a profile with its settings, subscriptions and entries.", &profileDeleteCmd{app: a}},
		{profileCmd, "list", "List profiles", "List profile names.", &profileListCmd{app: a}},
		{feedCmd, "add", "Subscribe to a feed", "Add a feed to a profile's subscriptions.", &feedAddCmd{app: a}},
		{feedCmd, "delete", "Unsubscribe from feeds", "Remove every feed matching the given URL, title and category.", &feedDeleteCmd{app: a}},
		{feedCmd, "list", "List subscriptions", "List a profile's feeds by category.", &feedListCmd{app: a}},
		{feedCmd, "import", "Import OPML", "Replace a profile's subscriptions with an OPML file.", &feedImportCmd{app: a}},
		{feedCmd, "export", "Export OPML", "Write a profile's subscriptions as OPML.", &feedExportCmd{app: a}},
	}
	for _, c := range commands {
		if _, err := c.parent.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return err
		}
	}

	if _, err := parser.AddCommand("run", "Send digests",
		"Fetch feeds and send a digest of new entries for each profile.", &runCmd{app: a}); err != nil {
		return err
	}
	if _, err := parser.AddCommand("serve", "Start the HTTP API",
		"Serve health, metrics and the profile API.", &serveCmd{app: a}); err != nil {
		return err
	}
	return nil
}

func (a *App) manager() (*profile.Manager, error) {
	c := cfg.Get()

	m := profile.NewManager(c.ConfigDir, c.DataDir, entries.Options{
		Workers:   c.WorkerCount,
		Timeout:   c.FetchTimeout,
		Retries:   c.FetchRetries,
		UserAgent: c.UserAgent,
	})
	if err := m.Init(); err != nil {
		return nil, err
	}
	return m, nil
}

func (a *App) renderer(m *profile.Manager) *output.Renderer {
	return output.NewRenderer(m.ProfilesDir(), filepath.Join(m.ConfigDir, "templates"), feed.NewContentExtractor())
}

func (a *App) senders() digest.Senders {
	if a.Senders != nil {
		return a.Senders
	}
	return output.NewRegistry(a.out)
}

func (a *App) loadProfile(name string) (*profile.Profile, error) {
	m, err := a.manager()
	if err != nil {
		return nil, err
	}
	return m.Get(name)
}

// lockedWriter serializes writes from concurrent profile runs.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
