package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskblog/internal/app"
	"taskblog/internal/config"
	"taskblog/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Development); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	application, err := app.New(cfg)
	if err != nil {
		logger.Error("main: failed to initialize application", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("main: server exited with error", err)
		os.Exit(1)
	}
	logger.Info("main: server stopped")
}
