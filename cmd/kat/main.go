package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"kat/internal/cli/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := command.NewRootCmd(os.Stdout, os.Stderr)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(command.ReportFailure(ctx, os.Stderr, err))
	}
}
