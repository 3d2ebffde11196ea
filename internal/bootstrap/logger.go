package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/RecipeBOM_Go/internal/config"
	"github.com/osse101/RecipeBOM_Go/internal/logger"
)

// SetupLogger initializes the default slog logger from cfg.
// With cfg.LogDir set, output is duplicated into a timestamped session file
// and older sessions beyond LogFileRetentionCount are removed. The returned
// file is nil when file logging is off; the caller closes it otherwise.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	logCfg := logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
		AddSource:   cfg.IsDevelopment(),
	}

	var (
		out     io.Writer = os.Stdout
		logFile *os.File
	)
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgCreateLogDir, err)
		}

		removed := cleanupLogs(cfg.LogDir, LogFileRetentionCount)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenLogFile, err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
		defer func() {
			for _, e := range removed {
				slog.Warn(LogMsgOldLogRemoveFailed, "file", e.name, "error", e.err)
			}
		}()
	}

	logger.InitLoggerWithWriter(logCfg, out)

	slog.Info(LogMsgLoggingInitialized, "level", logger.ParseLevel(logCfg.Level), "format", cfg.LogFormat, "log_dir", cfg.LogDir)
	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"driver", cfg.DBDriver)

	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"bom_strict", cfg.BOMStrict,
		"bom_max_depth", cfg.BOMMaxDepth,
		"bom_parallelism", cfg.BOMParallelism,
		"graph_cache_size", cfg.GraphCacheSize,
		"auth_enabled", cfg.APIKey != "")

	return logFile, nil
}

type removeFailure struct {
	name string
	err  error
}

// cleanupLogs keeps the newest keep session logs in dir, leaving room for the
// file about to be created. Failures are returned for logging once the
// logger is ready.
func cleanupLogs(dir string, keep int) []removeFailure {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var logs []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logs = append(logs, entry.Name())
		}
	}
	if len(logs) <= keep {
		return nil
	}

	sort.Strings(logs)
	var failures []removeFailure
	for _, name := range logs[:len(logs)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			failures = append(failures, removeFailure{name: name, err: err})
		}
	}
	return failures
}
