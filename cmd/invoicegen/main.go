package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/andy/invoicegen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The app is opened lazily by the command that needs it, so help and
	// config commands never prompt for the database key
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
