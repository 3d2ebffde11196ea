package config

import "time"

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Default configuration values
const (
	DefaultPort           = 8080
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultEnvironment    = "dev"
	DefaultServiceName    = "recipe-bom"
	DefaultVersion        = "dev"
	DefaultDriver         = DriverSQLite
	DefaultSQLitePath     = "recipes.db"
	DefaultDBMaxConns     = 10
	DefaultDBMaxIdle      = 5 * time.Minute
	DefaultDBMaxLife      = time.Hour
	DefaultBOMMaxDepth    = 64
	DefaultBOMParallelism = 4
	DefaultGraphCacheSize = 1024
	DefaultGraphCacheTTL  = 5 * time.Minute

	DefaultShutdownTimeout = 10 * time.Second
)

// Error messages
const (
	ErrMsgInvalidIntFmt      = "invalid %s value %q: %w"
	ErrMsgInvalidBoolFmt     = "invalid %s value %q: %w"
	ErrMsgInvalidDurationFmt = "invalid %s value %q: %w"
	ErrMsgUnknownDriverFmt   = "unknown DB_DRIVER %q (expected sqlite, postgres or memory)"
	ErrMsgNegativeFmt        = "%s must not be negative (got %d)"
)
