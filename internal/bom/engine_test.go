package bom

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/testing/leaktest"
)

const delta = 1e-9

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(newFakeGraph(), Options{})
	assert.Equal(t, DefaultMaxDepth, e.Options().MaxDepth)
	assert.Equal(t, DefaultParallelism, e.Options().Parallelism)
	assert.False(t, e.Options().Strict)
}

func TestCalculateRequirementsByID_SwordScenario(t *testing.T) {
	e := NewEngine(swordGraph(), Options{})

	got, err := e.CalculateRequirementsByID(context.Background(), domain.KindProduct, swordID, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 4, got[oreID], delta)

	report, err := e.FormatRequirementsForDisplay(context.Background(), got)
	require.NoError(t, err)
	require.Len(t, report.Requirements, 1)
	line := report.Requirements[0]
	assert.Equal(t, "Ore", line.Name)
	assert.InDelta(t, 4, line.Quantity, delta)
	assert.InDelta(t, 2, line.UnitCost, delta)
	assert.InDelta(t, 8, line.LineCost, delta)
	assert.InDelta(t, 8, report.TotalCost, delta)
}

func TestCalculateRequirementsByID_OutputQuantityScaling(t *testing.T) {
	e := NewEngine(swordGraph(), Options{})

	got, err := e.CalculateRequirementsByID(context.Background(), domain.KindMaterial, ingotID, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2, got[oreID], delta)

	// uneven batches are not rounded
	got, err = e.CalculateRequirementsByID(context.Background(), domain.KindMaterial, ingotID, 5)
	require.NoError(t, err)
	assert.InDelta(t, 10, got[oreID], delta)

	got, err = e.CalculateRequirementsByID(context.Background(), domain.KindMaterial, ingotID, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 3, got[oreID], delta)
}

func TestCalculateRequirementsByID_Linearity(t *testing.T) {
	g := swordGraph().
		base(coalID, "Coal", 0.5).
		recipe(domain.KindMaterial, alloyID, "Alloy", 2).
		needs(domain.KindMaterial, alloyID, domain.KindMaterial, ingotID, 1).
		needs(domain.KindMaterial, alloyID, domain.KindBase, coalID, 3).
		needs(domain.KindProduct, swordID, domain.KindMaterial, alloyID, 5)
	e := NewEngine(g, Options{})
	ctx := context.Background()

	one, err := e.CalculateRequirementsByID(ctx, domain.KindProduct, swordID, 1)
	require.NoError(t, err)
	seven, err := e.CalculateRequirementsByID(ctx, domain.KindProduct, swordID, 7)
	require.NoError(t, err)

	require.Len(t, seven, len(one))
	for id, qty := range one {
		assert.InDelta(t, qty*7, seven[id], delta, "base %d", id)
	}
}

func TestCalculateRequirementsByID_Idempotent(t *testing.T) {
	g := swordGraph().
		base(coalID, "Coal", 0.5).
		recipe(domain.KindMaterial, alloyID, "Alloy", 3).
		needs(domain.KindMaterial, alloyID, domain.KindMaterial, ingotID, 2).
		needs(domain.KindMaterial, alloyID, domain.KindBase, coalID, 5).
		needs(domain.KindProduct, swordID, domain.KindMaterial, alloyID, 1)
	e := NewEngine(g, Options{})
	ctx := context.Background()

	first, err := e.CalculateRequirementsByID(ctx, domain.KindProduct, swordID, 4)
	require.NoError(t, err)
	second, err := e.CalculateRequirementsByID(ctx, domain.KindProduct, swordID, 4)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for id, qty := range first {
		assert.InDelta(t, qty, second[id], delta, "base %d", id)
	}
}

func TestCalculateRequirementsByID_SharedIngredientSummed(t *testing.T) {
	// Sword uses Ore directly and through Ingot
	g := swordGraph().needs(domain.KindProduct, swordID, domain.KindBase, oreID, 1.5)
	e := NewEngine(g, Options{})

	got, err := e.CalculateRequirementsByID(context.Background(), domain.KindProduct, swordID, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2+1.5, got[oreID], delta)
}

func TestCalculateRequirementsByID_RecipeWithoutIngredients(t *testing.T) {
	g := newFakeGraph().recipe(domain.KindProduct, swordID, "Sword", 1)
	e := NewEngine(g, Options{})

	got, err := e.CalculateRequirementsByID(context.Background(), domain.KindProduct, swordID, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCalculateRequirementsByID_RootErrors(t *testing.T) {
	e := NewEngine(swordGraph(), Options{})
	ctx := context.Background()

	tests := []struct {
		name     string
		kind     domain.ItemKind
		id       int64
		quantity float64
		wantErr  error
	}{
		{"missing product", domain.KindProduct, 999, 1, domain.ErrItemNotFound},
		{"missing material", domain.KindMaterial, 999, 1, domain.ErrItemNotFound},
		{"base root", domain.KindBase, oreID, 1, domain.ErrInvalidItemKind},
		{"unknown kind", domain.ItemKind("gadget"), swordID, 1, domain.ErrInvalidItemKind},
		{"zero quantity", domain.KindProduct, swordID, 0, domain.ErrInvalidQuantity},
		{"negative quantity", domain.KindProduct, swordID, -2, domain.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.CalculateRequirementsByID(ctx, tt.kind, tt.id, tt.quantity)
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = e.GetRecipeTree(ctx, tt.kind, tt.id, tt.quantity)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCalculateRequirementsByName(t *testing.T) {
	e := NewEngine(swordGraph(), Options{})
	ctx := context.Background()

	got, err := e.CalculateRequirementsByName(ctx, domain.KindProduct, "Sword", 2)
	require.NoError(t, err)
	assert.InDelta(t, 4, got[oreID], delta)

	_, err = e.CalculateRequirementsByName(ctx, domain.KindProduct, "Shield", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Contains(t, err.Error(), "Shield")

	// names are looked up within the requested kind only
	_, err = e.CalculateRequirementsByName(ctx, domain.KindMaterial, "Sword", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestExpand_DanglingIngredientLenient(t *testing.T) {
	g := swordGraph()
	g.remove(domain.KindMaterial, ingotID)
	g.base(coalID, "Coal", 1).needs(domain.KindProduct, swordID, domain.KindBase, coalID, 2)
	e := NewEngine(g, Options{})

	exp, err := e.Expand(context.Background(), domain.KindProduct, swordID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Requirements{coalID: 2}, exp.Requirements)
	assert.Equal(t, []domain.ItemRef{{Kind: domain.KindMaterial, ID: ingotID}}, exp.Unresolved)

	tree, err := e.ExpandTree(context.Background(), domain.KindProduct, swordID, 1)
	require.NoError(t, err)
	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, "Coal", tree.Root.Children[0].Name)
	assert.Equal(t, exp.Unresolved, tree.Unresolved)
}

func TestExpand_DanglingIngredientStrict(t *testing.T) {
	g := swordGraph()
	g.remove(domain.KindMaterial, ingotID)
	e := NewEngine(g, Options{Strict: true})

	_, err := e.Expand(context.Background(), domain.KindProduct, swordID, 1)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
	assert.NotErrorIs(t, err, domain.ErrItemNotFound)

	_, err = e.GetRecipeTree(context.Background(), domain.KindProduct, swordID, 1)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestExpand_DanglingBase(t *testing.T) {
	g := swordGraph()
	g.remove(domain.KindBase, oreID)

	// the flat walk does not look bases up unless strict
	lenient := NewEngine(g, Options{})
	got, err := lenient.CalculateRequirementsByID(context.Background(), domain.KindProduct, swordID, 2)
	require.NoError(t, err)
	assert.InDelta(t, 4, got[oreID], delta)

	report, err := lenient.FormatRequirementsForDisplay(context.Background(), got)
	require.NoError(t, err)
	assert.Empty(t, report.Requirements)
	assert.Zero(t, report.TotalCost)

	root, err := lenient.GetRecipeTree(context.Background(), domain.KindProduct, swordID, 2)
	require.NoError(t, err)
	leaf := root.Children[0].Children[0]
	assert.Equal(t, "unknown base material #1", leaf.Name)
	assert.InDelta(t, 4, leaf.Quantity, delta)

	strict := NewEngine(g, Options{Strict: true})
	_, err = strict.CalculateRequirementsByID(context.Background(), domain.KindProduct, swordID, 2)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestExpand_Cycle(t *testing.T) {
	const a, b int64 = 30, 31
	g := newFakeGraph().
		base(oreID, "Ore", 1).
		recipe(domain.KindMaterial, a, "A", 1).
		recipe(domain.KindMaterial, b, "B", 1).
		needs(domain.KindMaterial, a, domain.KindBase, oreID, 1).
		needs(domain.KindMaterial, a, domain.KindMaterial, b, 1).
		needs(domain.KindMaterial, b, domain.KindMaterial, a, 1).
		recipe(domain.KindProduct, swordID, "Sword", 1).
		needs(domain.KindProduct, swordID, domain.KindMaterial, a, 1)
	e := NewEngine(g, Options{})

	_, err := e.Expand(context.Background(), domain.KindProduct, swordID, 1)
	require.ErrorIs(t, err, domain.ErrCyclicRecipe)

	var cyc *CyclicRecipeError
	require.True(t, errors.As(err, &cyc))
	assert.Equal(t, []domain.ItemRef{
		{Kind: domain.KindMaterial, ID: a},
		{Kind: domain.KindMaterial, ID: b},
		{Kind: domain.KindMaterial, ID: a},
	}, cyc.Path)
	assert.Contains(t, err.Error(), "material 30 -> material 31 -> material 30")

	_, err = e.GetRecipeTree(context.Background(), domain.KindProduct, swordID, 1)
	assert.ErrorIs(t, err, domain.ErrCyclicRecipe)
}

func TestExpand_DiamondIsNotACycle(t *testing.T) {
	// Sword needs Ingot twice through different parents
	g := swordGraph().
		recipe(domain.KindMaterial, alloyID, "Alloy", 1).
		needs(domain.KindMaterial, alloyID, domain.KindMaterial, ingotID, 3).
		needs(domain.KindProduct, swordID, domain.KindMaterial, alloyID, 1)
	e := NewEngine(g, Options{})

	got, err := e.CalculateRequirementsByID(context.Background(), domain.KindProduct, swordID, 3)
	require.NoError(t, err)
	// 3 Ingot direct + 9 Ingot through Alloy, at 2 Ore per Ingot
	assert.InDelta(t, 24, got[oreID], delta)
}

func TestExpand_DanglingReportedOncePerCall(t *testing.T) {
	// Ingot is reached directly and through Alloy, then deleted
	g := swordGraph().
		base(coalID, "Coal", 1).
		recipe(domain.KindMaterial, alloyID, "Alloy", 1).
		needs(domain.KindMaterial, alloyID, domain.KindMaterial, ingotID, 3).
		needs(domain.KindMaterial, alloyID, domain.KindBase, coalID, 1).
		needs(domain.KindProduct, swordID, domain.KindMaterial, alloyID, 1)
	g.remove(domain.KindMaterial, ingotID)
	e := NewEngine(g, Options{})
	want := []domain.ItemRef{{Kind: domain.KindMaterial, ID: ingotID}}

	exp, err := e.Expand(context.Background(), domain.KindProduct, swordID, 2)
	require.NoError(t, err)
	assert.Equal(t, want, exp.Unresolved)
	assert.InDelta(t, 2, exp.Requirements[coalID], delta)

	tree, err := e.ExpandTree(context.Background(), domain.KindProduct, swordID, 2)
	require.NoError(t, err)
	assert.Equal(t, want, tree.Unresolved)
}

func chainGraph(levels int) *fakeGraph {
	g := newFakeGraph().base(oreID, "Ore", 1).recipe(domain.KindProduct, swordID, "Sword", 1)
	parentKind, parentID := domain.KindProduct, swordID
	for i := 1; i <= levels; i++ {
		id := int64(100 + i)
		g.recipe(domain.KindMaterial, id, "M", 1).needs(parentKind, parentID, domain.KindMaterial, id, 1)
		parentKind, parentID = domain.KindMaterial, id
	}
	return g.needs(parentKind, parentID, domain.KindBase, oreID, 1)
}

func TestExpand_MaxDepth(t *testing.T) {
	ctx := context.Background()

	e := NewEngine(chainGraph(3), Options{MaxDepth: 3})
	got, err := e.CalculateRequirementsByID(ctx, domain.KindProduct, swordID, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, got[oreID], delta)

	e = NewEngine(chainGraph(4), Options{MaxDepth: 3})
	_, err = e.CalculateRequirementsByID(ctx, domain.KindProduct, swordID, 1)
	assert.ErrorIs(t, err, domain.ErrRecipeTooDeep)

	_, err = e.GetRecipeTree(ctx, domain.KindProduct, swordID, 1)
	assert.ErrorIs(t, err, domain.ErrRecipeTooDeep)
}

func TestExpand_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := chainGraph(10)
	e := NewEngine(g, Options{})

	// cancel partway through the walk
	g.onRead = func() {
		if g.reads.Load() == 4 {
			cancel()
		}
	}
	_, err := e.Expand(ctx, domain.KindProduct, swordID, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExpand_GraphError(t *testing.T) {
	boom := errors.New("connection reset")
	g := swordGraph()
	g.failOn = domain.ItemRef{Kind: domain.KindMaterial, ID: ingotID}
	g.failErr = boom
	e := NewEngine(g, Options{})

	_, err := e.Expand(context.Background(), domain.KindProduct, swordID, 1)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), ErrMsgGraphLookupFailed)
}

func TestGetRecipeTree_SwordScenario(t *testing.T) {
	e := NewEngine(swordGraph(), Options{})

	root, err := e.GetRecipeTree(context.Background(), domain.KindProduct, swordID, 2)
	require.NoError(t, err)

	assert.Equal(t, "Sword", root.Name)
	assert.Equal(t, domain.KindProduct, root.Kind)
	assert.InDelta(t, 2, root.Quantity, delta)
	assert.Equal(t, 1, root.OutputQuantity)
	require.Len(t, root.Children, 1)

	ingot := root.Children[0]
	assert.Equal(t, "Ingot", ingot.Name)
	assert.InDelta(t, 2, ingot.Quantity, delta)
	assert.Equal(t, 3, ingot.OutputQuantity)
	require.Len(t, ingot.Children, 1)

	ore := ingot.Children[0]
	assert.Equal(t, "Ore", ore.Name)
	assert.Equal(t, domain.KindBase, ore.Kind)
	assert.InDelta(t, 4, ore.Quantity, delta)
	assert.NotNil(t, ore.Children)
	assert.Empty(t, ore.Children)
}

func TestGetRecipeTree_LeavesMatchFlat(t *testing.T) {
	g := swordGraph().
		base(coalID, "Coal", 0.5).
		recipe(domain.KindMaterial, alloyID, "Alloy", 4).
		needs(domain.KindMaterial, alloyID, domain.KindMaterial, ingotID, 2).
		needs(domain.KindMaterial, alloyID, domain.KindBase, coalID, 7).
		needs(domain.KindProduct, swordID, domain.KindMaterial, alloyID, 3)
	e := NewEngine(g, Options{})
	ctx := context.Background()

	flat, err := e.CalculateRequirementsByID(ctx, domain.KindProduct, swordID, 5)
	require.NoError(t, err)
	root, err := e.GetRecipeTree(ctx, domain.KindProduct, swordID, 5)
	require.NoError(t, err)

	leaves := root.Leaves()
	require.Len(t, leaves, len(flat))
	for id, qty := range flat {
		assert.InDelta(t, qty, leaves[id], delta)
	}
}

func TestCalculateMultipleItems(t *testing.T) {
	g := swordGraph().base(coalID, "Coal", 1).needs(domain.KindMaterial, ingotID, domain.KindBase, coalID, 3)
	e := NewEngine(g, Options{Parallelism: 2})

	got, err := e.CalculateMultipleItems(context.Background(), []domain.BOMRequest{
		{Kind: domain.KindProduct, ID: swordID, Quantity: 2},
		{Kind: domain.KindMaterial, ID: ingotID, Quantity: 3},
	})
	require.NoError(t, err)
	// Sword x2 = 4 Ore + 2 Coal, Ingot x3 = 6 Ore + 3 Coal
	assert.InDelta(t, 10, got[oreID], delta)
	assert.InDelta(t, 5, got[coalID], delta)
}

func TestCalculateMultipleItems_Empty(t *testing.T) {
	e := NewEngine(swordGraph(), Options{})

	got, err := e.CalculateMultipleItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCalculateMultipleItems_MatchesSequentialSum(t *testing.T) {
	e := NewEngine(swordGraph(), Options{Parallelism: 3})
	ctx := context.Background()
	reqs := []domain.BOMRequest{
		{Kind: domain.KindProduct, ID: swordID, Quantity: 1},
		{Kind: domain.KindProduct, ID: swordID, Quantity: 4},
		{Kind: domain.KindMaterial, ID: ingotID, Quantity: 0.5},
		{Kind: domain.KindMaterial, ID: ingotID, Quantity: 7},
	}

	want := domain.Requirements{}
	for _, r := range reqs {
		got, err := e.CalculateRequirementsByID(ctx, r.Kind, r.ID, r.Quantity)
		require.NoError(t, err)
		want.Merge(got)
	}

	got, err := e.CalculateMultipleItems(ctx, reqs)
	require.NoError(t, err)
	assert.InDelta(t, want[oreID], got[oreID], delta)
}

func TestCalculateMultipleItems_RepeatedItemEqualsDoubledQuantity(t *testing.T) {
	g := swordGraph().base(coalID, "Coal", 1).needs(domain.KindMaterial, ingotID, domain.KindBase, coalID, 3)
	e := NewEngine(g, Options{Parallelism: 2})
	ctx := context.Background()

	twice, err := e.CalculateMultipleItems(ctx, []domain.BOMRequest{
		{Kind: domain.KindProduct, ID: swordID, Quantity: 1},
		{Kind: domain.KindProduct, ID: swordID, Quantity: 1},
	})
	require.NoError(t, err)
	doubled, err := e.CalculateRequirementsByID(ctx, domain.KindProduct, swordID, 2)
	require.NoError(t, err)

	require.Len(t, twice, len(doubled))
	for id, qty := range doubled {
		assert.InDelta(t, qty, twice[id], delta, "base %d", id)
	}
}

func TestExpandMultiple_UnresolvedDeduplicated(t *testing.T) {
	g := swordGraph()
	g.remove(domain.KindMaterial, ingotID)
	g.recipe(domain.KindProduct, 21, "Dagger", 1).needs(domain.KindProduct, 21, domain.KindMaterial, ingotID, 1)
	e := NewEngine(g, Options{})

	exp, err := e.ExpandMultiple(context.Background(), []domain.BOMRequest{
		{Kind: domain.KindProduct, ID: swordID, Quantity: 1},
		{Kind: domain.KindProduct, ID: 21, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Empty(t, exp.Requirements)
	assert.Equal(t, []domain.ItemRef{{Kind: domain.KindMaterial, ID: ingotID}}, exp.Unresolved)
}

func TestCalculateMultipleItems_FailureNamesRequest(t *testing.T) {
	e := NewEngine(swordGraph(), Options{})

	_, err := e.CalculateMultipleItems(context.Background(), []domain.BOMRequest{
		{Kind: domain.KindProduct, ID: swordID, Quantity: 1},
		{Kind: domain.KindProduct, ID: 404, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Contains(t, err.Error(), "item 2")
}

func TestCalculateMultipleItems_NoGoroutineLeak(t *testing.T) {
	e := NewEngine(chainGraph(20), Options{Parallelism: 4})
	reqs := make([]domain.BOMRequest, 32)
	for i := range reqs {
		reqs[i] = domain.BOMRequest{Kind: domain.KindProduct, ID: swordID, Quantity: float64(i + 1)}
	}
	reqs[5].ID = 404

	leaktest.CheckNoGoroutineLeak(t, func() {
		_, err := e.CalculateMultipleItems(context.Background(), reqs)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)

		reqs[5].ID = swordID
		got, err := e.CalculateMultipleItems(context.Background(), reqs)
		require.NoError(t, err)
		assert.InDelta(t, 32*33/2, got[oreID], delta)
	})
}
