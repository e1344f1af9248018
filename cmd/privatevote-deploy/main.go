package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DeBrosOfficial/privatevote/pkg/cli"
)

// version metadata populated via -ldflags at build time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date},
		os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
