package cli

import (
	"fmt"
	"log/slog"

	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type runCmd struct {
	Forget   bool   `long:"forget" description:"Send the digest without marking entries read or recording the digest time"`
	Method   string `long:"method" description:"Output method, overriding the profile's output_method"`
	Template string `long:"template" description:"Template, overriding the profile's template"`
	Args     struct {
		Profiles []string `positional-arg-name:"PROFILE" required:"1"`
	} `positional-args:"yes"`

	app *App
}

// Execute runs one digest per profile concurrently. A profile named twice
// runs once. Every profile runs to completion; the first failure is returned.
func (c *runCmd) Execute(args []string) error {
	m, err := c.app.manager()
	if err != nil {
		return err
	}

	renderer := c.app.renderer(m)
	senders := c.app.senders()
	opts := digest.RunOptions{
		Save:     !c.Forget,
		Template: c.Template,
		Method:   c.Method,
	}

	var g errgroup.Group
	for _, name := range lo.Uniq(c.Args.Profiles) {
		g.Go(func() error {
			p, err := m.Get(name)
			if err != nil {
				return err
			}
			defer p.Close()

			assembler := digest.NewAssembler(renderer, senders, slog.Default())
			if _, err := assembler.Run(c.app.ctx, p, opts); err != nil {
				slog.Error("Digest failed", "profile", name, "error", err)
				return fmt.Errorf("profile %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
