package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/RecipeBOM_Go/internal/bootstrap"
	"github.com/osse101/RecipeBOM_Go/internal/config"
	"github.com/osse101/RecipeBOM_Go/internal/server"
)

// @title Recipe BOM API
// @version 1.0
// @description Crafting catalog with bill-of-materials expansion
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	for _, w := range cfg.Warnings() {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	startCtx, cancel := context.WithTimeout(context.Background(), bootstrap.StartupTimeout)
	storage, err := bootstrap.OpenStorage(startCtx, cfg)
	cancel()
	if err != nil {
		return err
	}

	svcs := bootstrap.InitializeServices(cfg, storage.Catalog)
	srv := server.NewServer(cfg.Port, cfg.APIKey, svcs.Catalog, svcs.Engine)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case runErr = <-serveErr:
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{Server: srv, Storage: storage})

	return runErr
}
