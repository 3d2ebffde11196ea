package bom

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

func TestFormatRequirementsForDisplay_SortedByName(t *testing.T) {
	g := newFakeGraph().
		base(1, "Zinc", 1).
		base(2, "Amber", 3).
		base(3, "Iron", 0.25).
		base(4, "Amber", 1)
	e := NewEngine(g, Options{})

	report, err := e.FormatRequirementsForDisplay(context.Background(), domain.Requirements{1: 2, 2: 1, 3: 8, 4: 5, 99: 100})
	require.NoError(t, err)

	names := make([]string, 0, len(report.Requirements))
	for _, line := range report.Requirements {
		names = append(names, line.Name)
	}
	assert.Equal(t, []string{"Amber", "Amber", "Iron", "Zinc"}, names)
	assert.Equal(t, int64(2), report.Requirements[0].ID)
	assert.Equal(t, int64(4), report.Requirements[1].ID)
	assert.InDelta(t, 2.0+3.0+2.0+5.0, report.TotalCost, delta)
}

func TestFormatRequirementsForDisplay_Empty(t *testing.T) {
	e := NewEngine(newFakeGraph(), Options{})

	report, err := e.FormatRequirementsForDisplay(context.Background(), domain.Requirements{})
	require.NoError(t, err)
	assert.NotNil(t, report.Requirements)
	assert.Empty(t, report.Requirements)
	assert.Zero(t, report.TotalCost)
}

func TestFormatRequirementsForDisplay_GraphError(t *testing.T) {
	boom := errors.New("timeout")
	g := newFakeGraph().base(1, "Ore", 1)
	g.failOn = domain.ItemRef{Kind: domain.KindBase, ID: 1}
	g.failErr = boom
	e := NewEngine(g, Options{})

	_, err := e.FormatRequirementsForDisplay(context.Background(), domain.Requirements{1: 1})
	assert.ErrorIs(t, err, boom)
}
