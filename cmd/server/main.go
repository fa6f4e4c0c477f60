package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobswipe/internal/app"
	"jobswipe/internal/config"
	"jobswipe/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	bootstrap, cleanup, err := app.Bootstrap(cfg, lg)
	if err != nil {
		lg.Fatal("failed to bootstrap app", zap.Error(err))
	}
	defer func() {
		if err := cleanup(); err != nil {
			lg.Warn("cleanup error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("starting", zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment))
	if err := bootstrap.Run(ctx); err != nil {
		lg.Error("server error", zap.Error(err))
		return
	}
	lg.Info("stopped")
}
