package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the permission for the log directory
	DirPermission = 0o755

	// LogFilePermission is the permission for session log files
	LogFilePermission = 0o644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat sorts lexically in creation order
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is how many older session logs survive startup
	LogFileRetentionCount = 9
)

// StartupTimeout bounds opening and migrating the store
const StartupTimeout = 30 * time.Second

// Log messages
const (
	LogMsgLoggingInitialized   = "Logging initialized"
	LogMsgStarting             = "Starting recipe BOM service"
	LogMsgConfigurationLoaded  = "Configuration loaded"
	LogMsgStorageOpened        = "Storage opened"
	LogMsgServicesInitialized  = "Services initialized"
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgClosingStorage       = "Closing storage"
	LogMsgStorageCloseFailed   = "Storage close failed"
	LogMsgServerStopped        = "Server stopped"
	LogMsgOldLogRemoveFailed   = "Failed to delete old log file"
)

// Error messages
const (
	ErrMsgCreateLogDir    = "failed to create logs directory"
	ErrMsgOpenLogFile     = "failed to open log file"
	ErrMsgUnknownDriver   = "unknown storage driver"
	ErrMsgOpenSQLite      = "failed to open sqlite database"
	ErrMsgConnectPostgres = "failed to connect to postgres"
	ErrMsgMigratePostgres = "failed to migrate postgres"
)
