package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/RecipeBOM_Go/internal/server"
)

// ShutdownComponents holds everything that needs an orderly stop
type ShutdownComponents struct {
	Server  *server.Server
	Storage *Storage
}

// GracefulShutdown stops the HTTP server first so no request is left running
// against a closed store, then releases the store.
// Errors are logged and never abort the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Storage != nil {
		slog.Info(LogMsgClosingStorage, "driver", components.Storage.Driver)
		if err := components.Storage.Close(); err != nil {
			slog.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
