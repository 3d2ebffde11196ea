package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// countingGraph records how often the wrapped graph is consulted
type countingGraph struct {
	items map[domain.ItemRef]*domain.Item
	calls int
}

func (g *countingGraph) GetItem(_ context.Context, kind domain.ItemKind, id int64) (*domain.Item, error) {
	g.calls++
	return g.items[domain.ItemRef{Kind: kind, ID: id}], nil
}

func (g *countingGraph) FindItem(_ context.Context, _ domain.ItemKind, _ string) (*domain.Item, error) {
	g.calls++
	return nil, nil
}

func (g *countingGraph) GetRequirements(_ context.Context, _ domain.ItemKind, _ int64) ([]domain.RecipeRequirement, error) {
	g.calls++
	return []domain.RecipeRequirement{{IngredientKind: domain.KindBase, IngredientID: 1, Quantity: 1}}, nil
}

func TestCachedGraph(t *testing.T) {
	inner := &countingGraph{items: map[domain.ItemRef]*domain.Item{
		{Kind: domain.KindBase, ID: 1}: {Kind: domain.KindBase, ID: 1, Name: "Ore", OutputQuantity: 1},
	}}
	g := newCachedGraph(inner, 16, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		item, err := g.GetItem(ctx, domain.KindBase, 1)
		require.NoError(t, err)
		assert.Equal(t, "Ore", item.Name)
	}
	assert.Equal(t, 1, inner.calls, "Repeated lookups are served from cache")

	missing, err := g.GetItem(ctx, domain.KindBase, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)
	_, _ = g.GetItem(ctx, domain.KindBase, 2)
	assert.Equal(t, 2, inner.calls, "Misses are cached as well")

	item, _ := g.GetItem(ctx, domain.KindBase, 1)
	item.Name = "mutated"
	again, _ := g.GetItem(ctx, domain.KindBase, 1)
	assert.Equal(t, "Ore", again.Name, "Cached values are copied out")

	reqs, _ := g.GetRequirements(ctx, domain.KindMaterial, 7)
	reqs[0].Quantity = 99
	reqs, _ = g.GetRequirements(ctx, domain.KindMaterial, 7)
	assert.InDelta(t, 1.0, reqs[0].Quantity, 1e-9)

	g.Purge()
	_, _ = g.GetItem(ctx, domain.KindBase, 1)
	assert.Equal(t, 4, inner.calls)
}

func TestStoreGraph_BaseHasNoRequirements(t *testing.T) {
	g := NewGraph(nil)
	reqs, err := g.GetRequirements(context.Background(), domain.KindBase, 1)
	require.NoError(t, err)
	assert.Empty(t, reqs)

	_, err = g.GetItem(context.Background(), domain.ItemKind("widget"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidItemKind)
}
