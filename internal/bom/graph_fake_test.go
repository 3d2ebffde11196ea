package bom

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// fakeGraph is an in-memory recipe graph for engine tests
type fakeGraph struct {
	mu    sync.RWMutex
	items map[domain.ItemRef]domain.Item
	edges map[domain.ItemRef][]domain.RecipeRequirement

	failOn  domain.ItemRef
	failErr error
	reads   atomic.Int64
	onRead  func()
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		items: map[domain.ItemRef]domain.Item{},
		edges: map[domain.ItemRef][]domain.RecipeRequirement{},
	}
}

func (g *fakeGraph) base(id int64, name string, cost float64) *fakeGraph {
	g.items[domain.ItemRef{Kind: domain.KindBase, ID: id}] = domain.Item{Kind: domain.KindBase, ID: id, Name: name, OutputQuantity: 1, UnitCost: cost}
	return g
}

func (g *fakeGraph) recipe(kind domain.ItemKind, id int64, name string, output int) *fakeGraph {
	g.items[domain.ItemRef{Kind: kind, ID: id}] = domain.Item{Kind: kind, ID: id, Name: name, OutputQuantity: output}
	return g
}

func (g *fakeGraph) needs(kind domain.ItemKind, id int64, ingKind domain.ItemKind, ingID int64, qty float64) *fakeGraph {
	ref := domain.ItemRef{Kind: kind, ID: id}
	g.edges[ref] = append(g.edges[ref], domain.RecipeRequirement{
		RecipeKind:     kind,
		RecipeID:       id,
		IngredientKind: ingKind,
		IngredientID:   ingID,
		Quantity:       qty,
	})
	return g
}

func (g *fakeGraph) remove(kind domain.ItemKind, id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.items, domain.ItemRef{Kind: kind, ID: id})
}

func (g *fakeGraph) read(ref domain.ItemRef) error {
	g.reads.Add(1)
	if g.onRead != nil {
		g.onRead()
	}
	if g.failErr != nil && g.failOn == ref {
		return g.failErr
	}
	return nil
}

func (g *fakeGraph) GetItem(_ context.Context, kind domain.ItemKind, id int64) (*domain.Item, error) {
	ref := domain.ItemRef{Kind: kind, ID: id}
	if err := g.read(ref); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	item, ok := g.items[ref]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (g *fakeGraph) FindItem(_ context.Context, kind domain.ItemKind, name string) (*domain.Item, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for ref, item := range g.items {
		if ref.Kind == kind && item.Name == name {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (g *fakeGraph) GetRequirements(_ context.Context, kind domain.ItemKind, id int64) ([]domain.RecipeRequirement, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	edges := g.edges[domain.ItemRef{Kind: kind, ID: id}]
	return append([]domain.RecipeRequirement(nil), edges...), nil
}

const (
	oreID   int64 = 1
	coalID  int64 = 2
	ingotID int64 = 10
	alloyID int64 = 11
	swordID int64 = 20
)

// swordGraph is the Ore -> Ingot -> Sword chain: Ingot yields 3 from 6 Ore, Sword takes 1 Ingot
func swordGraph() *fakeGraph {
	return newFakeGraph().
		base(oreID, "Ore", 2).
		recipe(domain.KindMaterial, ingotID, "Ingot", 3).
		needs(domain.KindMaterial, ingotID, domain.KindBase, oreID, 6).
		recipe(domain.KindProduct, swordID, "Sword", 1).
		needs(domain.KindProduct, swordID, domain.KindMaterial, ingotID, 1)
}
