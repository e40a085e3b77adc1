package bootstrap

import "time"

// ShutdownTimeout bounds graceful shutdown of the HTTP server and SSE hub
const ShutdownTimeout = 10 * time.Second

// Log messages for startup
const (
	LogMsgStarting            = "Starting spaceminer"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgEventSystemReady    = "Event system initialized"
	LogMsgSettingsLoaded      = "Expedition settings loaded"
)

// Config sync messages
const (
	LogMsgSyncingCatalog     = "Syncing catalog from YAML config..."
	LogMsgCatalogSynced      = "Catalog synced successfully"
	ErrMsgFailedLoadCatalog  = "failed to load catalog config"
	ErrMsgInvalidCatalog     = "invalid catalog config"
	ErrMsgFailedSyncCatalog  = "failed to sync catalog to database"
	ErrMsgFailedLoadSettings = "failed to load expedition settings"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgShuttingDownSSE      = "Stopping SSE hub..."
	LogMsgServerStopped        = "Server stopped"
)
