package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"newsfeed/internal/di"
)

func main() {
	bootLog := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("service", "newsfeed")

	application, err := di.InitializeApp()
	if err != nil {
		bootLog.Error("failed to initialize application", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		bootLog.Error("application runtime error", slog.Any("err", err))
		os.Exit(1)
	}
}
