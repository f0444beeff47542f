package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// interrupt and termination signals cancel the run context so
	// in-flight shards can finish cleanly
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
