package cli

import (
	"fmt"
	"log/slog"

	"github.com/lysyi3m/rss-digest/app/profile"
)

type profileArgs struct {
	Profile string `positional-arg-name:"PROFILE" required:"yes"`
}

type profileAddCmd struct {
	Email    string      `long:"email" description:"Recipient address for email digests"`
	UserName string      `long:"name" description:"Name used to address the recipient"`
	Args     profileArgs `positional-args:"yes"`

	app *App
}

func (c *profileAddCmd) Execute(args []string) error {
	m, err := c.app.manager()
	if err != nil {
		return err
	}

	p, err := m.Add(c.Args.Profile, profile.AddOptions{Email: c.Email, UserName: c.UserName})
	if err != nil {
		return err
	}
	defer p.Close()

	fmt.Fprintf(c.app.out, "Profile %s created\n", p.Name())
	return nil
}

type profileDeleteCmd struct {
	Args profileArgs `positional-args:"yes"`

	app *App
}

func (c *profileDeleteCmd) Execute(args []string) error {
	m, err := c.app.manager()
	if err != nil {
		return err
	}
	return m.Delete(c.Args.Profile)
}

type profileListCmd struct {
	app *App
}

func (c *profileListCmd) Execute(args []string) error {
	m, err := c.app.manager()
	if err != nil {
		return err
	}

	names, err := m.List()
	if err != nil {
		return err
	}

	slog.Debug("Profiles listed", "count", len(names))
	for _, name := range names {
		fmt.Fprintln(c.app.out, name)
	}
	return nil
}
