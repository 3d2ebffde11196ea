// Package commands implements the bomctl command tree.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osse101/RecipeBOM_Go/cmd/bomctl/output"
	"github.com/osse101/RecipeBOM_Go/internal/bootstrap"
	"github.com/osse101/RecipeBOM_Go/internal/config"
	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/logger"
)

// app carries the global flags and the configuration they resolve to
type app struct {
	driver     string
	sqlitePath string
	verbose    bool
	jsonOutput bool

	cfg *config.Config
}

// NewRootCmd builds the bomctl command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "bomctl",
		Short: "Inspect a recipe catalog and expand bills of materials",
		Long: `bomctl works directly against the catalog store configured for the
recipe BOM service (DB_DRIVER, SQLITE_PATH, DB_* variables or a .env file).

Examples:
  bomctl migrate
  bomctl calc product "Iron Sword" -q 5
  bomctl calc product:3=2 material:"Iron Ingot"=10
  bomctl tree product 3 --json`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}

	root.PersistentFlags().StringVar(&a.driver, "driver", "", "Storage driver: sqlite, postgres or memory (overrides DB_DRIVER)")
	root.PersistentFlags().StringVar(&a.sqlitePath, "sqlite-path", "", "SQLite database file (overrides SQLITE_PATH)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose logging on stderr")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		newMigrateCmd(a),
		newCalcCmd(a),
		newTreeCmd(a),
		newStatsCmd(a),
		newSearchCmd(a),
	)
	return root
}

// Execute runs the root command
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		output.New(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}

func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.driver != "" {
		cfg.DBDriver = a.driver
	}
	if a.sqlitePath != "" {
		cfg.SQLitePath = a.sqlitePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := logger.LogLevelWarn
	if a.verbose {
		level = logger.LogLevelDebug
	}
	logger.InitLoggerWithWriter(logger.Config{Level: level, Format: logger.LogFormatText}, cmd.ErrOrStderr())

	a.cfg = cfg
	return nil
}

// withServices opens the configured store for the duration of fn
func (a *app) withServices(ctx context.Context, fn func(st *bootstrap.Storage, svcs *bootstrap.Services) error) (err error) {
	st, err := bootstrap.OpenStorage(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, st.Close())
	}()
	return fn(st, bootstrap.InitializeServices(a.cfg, st.Catalog))
}

func (a *app) printer(cmd *cobra.Command) *output.Printer {
	return output.New(cmd.OutOrStdout())
}

func (a *app) writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseKind accepts the canonical kind names plus a few short forms
func parseKind(raw string) (domain.ItemKind, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	switch norm {
	case "p", "prod":
		return domain.KindProduct, nil
	case "m", "mat":
		return domain.KindMaterial, nil
	case "b":
		return domain.KindBase, nil
	}
	kind, ok := domain.ParseItemKind(norm)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, raw)
	}
	return kind, nil
}

// resolveRef turns an id or an exact item name into an id
func resolveRef(ctx context.Context, svcs *bootstrap.Services, kind domain.ItemKind, ref string) (int64, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	item, err := svcs.Catalog.Graph().FindItem(ctx, kind, ref)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, fmt.Errorf("%w: %s %q", domain.ErrItemNotFound, kind, ref)
	}
	return item.ID, nil
}
