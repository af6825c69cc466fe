package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/collagepack/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
