package main

import (
	"context"
	"os"

	"spendreport/internal/cli"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()

	if err := newRootCommand(logger).ExecuteContext(ctx); err != nil {
		logger.Error("Spend report failed", "error", err)
		cancel()
		os.Exit(1)
	}
}
