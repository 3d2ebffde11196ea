package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/RecipeBOM_Go/internal/bootstrap"
	"github.com/osse101/RecipeBOM_Go/internal/config"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withServices(ctx, func(st *bootstrap.Storage, _ *bootstrap.Services) error {
				p := a.printer(cmd)
				if st.Driver == config.DriverMemory {
					p.Info("The memory driver keeps no schema")
					return nil
				}
				version, err := st.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.writeJSON(cmd, map[string]any{"driver": st.Driver, "version": version})
				}
				p.Success("Schema up to date (%s, version %d)", st.Driver, version)
				return nil
			})
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count catalog rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withServices(ctx, func(_ *bootstrap.Storage, svcs *bootstrap.Services) error {
				stats, err := svcs.Catalog.Stats(ctx)
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.writeJSON(cmd, stats)
				}
				p := a.printer(cmd)
				p.Section("Catalog")
				p.Stats(stats)
				return nil
			})
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Find items whose name contains a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withServices(ctx, func(_ *bootstrap.Storage, svcs *bootstrap.Services) error {
				res, err := svcs.Catalog.Search(ctx, args[0])
				if err != nil {
					return err
				}
				if a.jsonOutput {
					return a.writeJSON(cmd, res)
				}
				p := a.printer(cmd)
				p.Section(fmt.Sprintf("Items matching %q", args[0]))
				p.Search(res)
				return nil
			})
		},
	}
}
