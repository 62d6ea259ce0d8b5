package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/peyjabanki/internal/buildinfo"
	"github.com/dmitrijs2005/peyjabanki/internal/client/cli"
	"github.com/dmitrijs2005/peyjabanki/internal/client/config"
	"github.com/dmitrijs2005/peyjabanki/internal/logging"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred cleanup happens before exit.
func run(stdout, stderr io.Writer) int {

	buildinfo.PrintBuildData(stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.NewTextLogger(stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	app.Run(ctx)
	return 0
}
