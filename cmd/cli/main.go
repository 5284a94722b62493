package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hashedin27-max/GCS-Upload/internal/client/cli"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
)

func main() {
	// optional .env overlay; the config loader reads the variables
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logging.NewDefault(slog.LevelInfo)

	if err := cli.NewRootCommand(log).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gcsup: %v\n", err)
		os.Exit(1)
	}
}
