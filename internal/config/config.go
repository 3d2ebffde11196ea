package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	// LogDir receives a session log file per run when set
	LogDir string

	// APIKey guards /api/v1 when set; empty leaves the API open
	APIKey          string
	ShutdownTimeout time.Duration

	// Storage
	DBDriver   string
	SQLitePath string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int
	DBMaxIdle  time.Duration
	DBMaxLife  time.Duration

	// Expansion engine
	BOMStrict      bool
	BOMMaxDepth    int
	BOMParallelism int

	// Recipe graph read cache; size 0 disables it
	GraphCacheSize int
	GraphCacheTTL  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		LogDir:      getEnv("LOG_DIR", ""),
		APIKey:      getEnv("API_KEY", ""),
		DBDriver:    getEnv("DB_DRIVER", DefaultDriver),
		SQLitePath:  getEnv("SQLITE_PATH", DefaultSQLitePath),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "recipes"),
	}

	var err error
	if cfg.Port, err = parseInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = parseInt("DB_MAX_CONNS", DefaultDBMaxConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdle, err = parseDuration("DB_MAX_IDLE", DefaultDBMaxIdle); err != nil {
		return nil, err
	}
	if cfg.DBMaxLife, err = parseDuration("DB_MAX_LIFE", DefaultDBMaxLife); err != nil {
		return nil, err
	}
	if cfg.BOMStrict, err = parseBool("BOM_STRICT", false); err != nil {
		return nil, err
	}
	if cfg.BOMMaxDepth, err = parseInt("BOM_MAX_DEPTH", DefaultBOMMaxDepth); err != nil {
		return nil, err
	}
	if cfg.BOMParallelism, err = parseInt("BOM_PARALLELISM", DefaultBOMParallelism); err != nil {
		return nil, err
	}
	if cfg.GraphCacheSize, err = parseInt("GRAPH_CACHE_SIZE", DefaultGraphCacheSize); err != nil {
		return nil, err
	}
	if cfg.GraphCacheTTL, err = parseDuration("GRAPH_CACHE_TTL", DefaultGraphCacheTTL); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf(ErrMsgUnknownDriverFmt, c.DBDriver)
	}

	for name, v := range map[string]int{
		"BOM_MAX_DEPTH":    c.BOMMaxDepth,
		"BOM_PARALLELISM":  c.BOMParallelism,
		"GRAPH_CACHE_SIZE": c.GraphCacheSize,
		"DB_MAX_CONNS":     c.DBMaxConns,
	} {
		if v < 0 {
			return fmt.Errorf(ErrMsgNegativeFmt, name, v)
		}
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseInt(key string, defaultValue int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgInvalidIntFmt, key, raw, err)
	}
	return v, nil
}

func parseBool(key string, defaultValue bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf(ErrMsgInvalidBoolFmt, key, raw, err)
	}
	return v, nil
}

func parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgInvalidDurationFmt, key, raw, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsDevelopment reports whether the service runs in a dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}
