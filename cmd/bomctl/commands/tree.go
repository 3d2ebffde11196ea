package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/RecipeBOM_Go/internal/bootstrap"
)

func newTreeCmd(a *app) *cobra.Command {
	var (
		quantity float64
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "tree KIND REF",
		Short: "Show the full recipe tree of an item",
		Long: `Print every intermediate step down to base materials. Each node shows the
absolute quantity needed at that position.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				a.cfg.BOMStrict = strict
			}

			ctx := cmd.Context()
			return a.withServices(ctx, func(_ *bootstrap.Storage, svcs *bootstrap.Services) error {
				id, err := resolveRef(ctx, svcs, kind, args[1])
				if err != nil {
					return err
				}
				exp, err := svcs.Engine.ExpandTree(ctx, kind, id, quantity)
				if err != nil {
					return err
				}

				if a.jsonOutput {
					return a.writeJSON(cmd, exp)
				}
				p := a.printer(cmd)
				p.Section(fmt.Sprintf("Recipe tree for %s", exp.Root.Name))
				p.Tree(exp.Root)
				p.Unresolved(exp.Unresolved)
				return nil
			})
		},
	}

	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 1, "Quantity of the root item")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on dangling ingredient references instead of skipping them")
	return cmd
}
