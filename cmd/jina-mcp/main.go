package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/matthewmueller/logs"
	"github.com/webreader/jina-mcp/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	log := logs.Default()
	if err := run(ctx, log); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	cli := cli.New(log)
	return cli.Parse(ctx, os.Args[1:]...)
}
