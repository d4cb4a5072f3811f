package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/karu285/wordbook-bot-go/internal/app"
	"github.com/karu285/wordbook-bot-go/internal/config"
	"github.com/karu285/wordbook-bot-go/internal/util"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Wordbook bot starting...",
		zap.String("provider", cfg.Dict.Type.String()),
		zap.String("log_level", cfg.Logging.Level),
	)

	container, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}

	validateCtx, validateCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if !container.PingHost(validateCtx) {
		logger.Warn("Host bridge is not answering yet, will keep reconnecting", zap.String("base_url", cfg.Host.BaseURL))
	}
	if err := container.ValidateCredentials(validateCtx); err != nil {
		logger.Warn("Dictionary credential validation failed, writes may be rejected", zap.Error(err))
	}
	validateCancel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	bridge := container.Bridge()
	errCh := make(chan error, 1)
	go func() {
		if err := bridge.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	logger.Info("Bridge started, waiting for queries...")

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("Bridge error", zap.Error(err))
	}

	logger.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := bridge.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
