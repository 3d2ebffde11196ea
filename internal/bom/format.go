package bom

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// FormatRequirementsForDisplay joins a flat result with base material records.
// Ids that no longer resolve are dropped; lines are sorted by name, then id.
func (e *Engine) FormatRequirementsForDisplay(ctx context.Context, reqs domain.Requirements) (*domain.RequirementsReport, error) {
	report := &domain.RequirementsReport{Requirements: make([]domain.RequirementLine, 0, len(reqs))}
	for id, qty := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item, err := e.graph.GetItem(ctx, domain.KindBase, id)
		if err != nil {
			e.observeError(ctx, OpFormat, err)
			return nil, fmt.Errorf("%s: %w", ErrMsgGraphLookupFailed, err)
		}
		if item == nil {
			continue
		}
		line := domain.RequirementLine{
			ID:       id,
			Name:     item.Name,
			Quantity: qty,
			UnitCost: item.UnitCost,
			LineCost: qty * item.UnitCost,
		}
		report.Requirements = append(report.Requirements, line)
	}

	sort.Slice(report.Requirements, func(i, j int) bool {
		a, b := report.Requirements[i], report.Requirements[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	for _, line := range report.Requirements {
		report.TotalCost += line.LineCost
	}
	return report, nil
}
