package bootstrap

import (
	"context"
	"log/slog"

	"github.com/spaceminer/spaceminer-server/internal/database"
	"github.com/spaceminer/spaceminer-server/internal/server"
	"github.com/spaceminer/spaceminer-server/internal/sse"
)

// ShutdownComponents holds everything that needs an orderly stop
type ShutdownComponents struct {
	Server *server.Server
	SSEHub *sse.Hub
	DBPool database.Pool
}

// GracefulShutdown stops accepting requests, then closes SSE streams, then the pool.
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.SSEHub != nil {
		slog.Info(LogMsgShuttingDownSSE)
		c.SSEHub.Stop()
	}

	if c.DBPool != nil {
		c.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
