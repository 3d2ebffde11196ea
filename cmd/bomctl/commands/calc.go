package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osse101/RecipeBOM_Go/internal/bootstrap"
	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

type calcResult struct {
	*domain.RequirementsReport
	Unresolved []domain.ItemRef `json:"unresolved,omitempty"`
}

// itemSpec is one requested item before its reference is resolved
type itemSpec struct {
	kind     domain.ItemKind
	ref      string
	quantity float64
}

func newCalcCmd(a *app) *cobra.Command {
	var (
		quantity float64
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "calc KIND REF | calc KIND:REF[=QTY]...",
		Short: "Total the base materials needed to craft one or more items",
		Long: `Expand items down to base materials and print the aggregated requirements
with their cost. REF is an id or an exact name.

With several items the requirements are summed across all of them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := parseItemSpecs(args, quantity)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				a.cfg.BOMStrict = strict
			}

			ctx := cmd.Context()
			return a.withServices(ctx, func(_ *bootstrap.Storage, svcs *bootstrap.Services) error {
				reqs := make([]domain.BOMRequest, 0, len(specs))
				for _, s := range specs {
					id, err := resolveRef(ctx, svcs, s.kind, s.ref)
					if err != nil {
						return err
					}
					reqs = append(reqs, domain.BOMRequest{Kind: s.kind, ID: id, Quantity: s.quantity})
				}

				var exp *domain.Expansion
				if len(reqs) == 1 {
					exp, err = svcs.Engine.Expand(ctx, reqs[0].Kind, reqs[0].ID, reqs[0].Quantity)
				} else {
					exp, err = svcs.Engine.ExpandMultiple(ctx, reqs)
				}
				if err != nil {
					return err
				}

				report, err := svcs.Engine.FormatRequirementsForDisplay(ctx, exp.Requirements)
				if err != nil {
					return err
				}

				if a.jsonOutput {
					return a.writeJSON(cmd, calcResult{RequirementsReport: report, Unresolved: exp.Unresolved})
				}
				p := a.printer(cmd)
				p.Section(fmt.Sprintf("Bill of materials for %d item(s)", len(reqs)))
				p.Report(report)
				p.Unresolved(exp.Unresolved)
				return nil
			})
		},
	}

	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 1, "Quantity for items that do not set one")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on dangling ingredient references instead of skipping them")
	return cmd
}

// parseItemSpecs reads either "KIND REF" or a list of "KIND:REF[=QTY]"
func parseItemSpecs(args []string, defaultQty float64) ([]itemSpec, error) {
	if len(args) == 2 && !strings.Contains(args[0], ":") {
		kind, err := parseKind(args[0])
		if err != nil {
			return nil, err
		}
		return []itemSpec{{kind: kind, ref: args[1], quantity: defaultQty}}, nil
	}

	specs := make([]itemSpec, 0, len(args))
	for _, arg := range args {
		rawKind, rest, ok := strings.Cut(arg, ":")
		if !ok || rest == "" {
			return nil, fmt.Errorf("%w: %q, want KIND:REF[=QTY]", domain.ErrInvalidInput, arg)
		}
		kind, err := parseKind(rawKind)
		if err != nil {
			return nil, err
		}

		s := itemSpec{kind: kind, ref: rest, quantity: defaultQty}
		if i := strings.LastIndex(rest, "="); i > 0 {
			q, err := strconv.ParseFloat(rest[i+1:], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: quantity %q in %q is not a number", domain.ErrInvalidInput, rest[i+1:], arg)
			}
			s.ref, s.quantity = rest[:i], q
		}
		specs = append(specs, s)
	}
	return specs, nil
}
