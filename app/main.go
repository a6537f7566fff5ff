package main

import (
	"context"
	"log/slog"
	"os"

	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/lysyi3m/rss-digest/app/cfg"
	"github.com/lysyi3m/rss-digest/app/cli"
)

func main() {
	cfg.LoadEnv()

	if err := cli.New(os.Stdout).Run(context.Background(), os.Args[1:]); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
