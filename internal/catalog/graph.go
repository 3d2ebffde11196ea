package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/metrics"
	"github.com/osse101/RecipeBOM_Go/internal/repository"
)

// storeGraph adapts a Catalog into the read-only recipe graph view
type storeGraph struct {
	store repository.Catalog
}

// NewGraph returns an uncached Graph reading straight from store
func NewGraph(store repository.Catalog) repository.Graph {
	return &storeGraph{store: store}
}

func (g *storeGraph) GetItem(ctx context.Context, kind domain.ItemKind, id int64) (*domain.Item, error) {
	switch kind {
	case domain.KindBase:
		b, err := g.store.GetBaseMaterialByID(ctx, id)
		if err != nil || b == nil {
			return nil, err
		}
		return b.AsItem(), nil
	case domain.KindMaterial:
		m, err := g.store.GetMaterialByID(ctx, id)
		if err != nil || m == nil {
			return nil, err
		}
		return m.AsItem(), nil
	case domain.KindProduct:
		p, err := g.store.GetProductByID(ctx, id)
		if err != nil || p == nil {
			return nil, err
		}
		return p.AsItem(), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, kind)
}

func (g *storeGraph) FindItem(ctx context.Context, kind domain.ItemKind, name string) (*domain.Item, error) {
	switch kind {
	case domain.KindBase:
		b, err := g.store.GetBaseMaterialByName(ctx, name)
		if err != nil || b == nil {
			return nil, err
		}
		return b.AsItem(), nil
	case domain.KindMaterial:
		m, err := g.store.GetMaterialByName(ctx, name)
		if err != nil || m == nil {
			return nil, err
		}
		return m.AsItem(), nil
	case domain.KindProduct:
		p, err := g.store.GetProductByName(ctx, name)
		if err != nil || p == nil {
			return nil, err
		}
		return p.AsItem(), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, kind)
}

func (g *storeGraph) GetRequirements(ctx context.Context, kind domain.ItemKind, id int64) ([]domain.RecipeRequirement, error) {
	if kind == domain.KindBase {
		return nil, nil
	}
	return g.store.GetRequirements(ctx, kind, id)
}

// cachedGraph memoizes item and requirement lookups with an expiring LRU.
// Misses are cached too so dangling references don't hit the store repeatedly.
// A store read is only cached if no Purge ran while it was in flight.
type cachedGraph struct {
	next  repository.Graph
	items *expirable.LRU[domain.ItemRef, *domain.Item]
	reqs  *expirable.LRU[domain.ItemRef, []domain.RecipeRequirement]

	mu  sync.Mutex
	gen uint64
}

func newCachedGraph(next repository.Graph, size int, ttl time.Duration) *cachedGraph {
	return &cachedGraph{
		next:  next,
		items: expirable.NewLRU[domain.ItemRef, *domain.Item](size, nil, ttl),
		reqs:  expirable.NewLRU[domain.ItemRef, []domain.RecipeRequirement](size, nil, ttl),
	}
}

func (g *cachedGraph) GetItem(ctx context.Context, kind domain.ItemKind, id int64) (*domain.Item, error) {
	key := domain.ItemRef{Kind: kind, ID: id}
	if item, ok := g.items.Get(key); ok {
		metrics.GraphCacheRequests.WithLabelValues(metrics.ResultHit).Inc()
		return copyItem(item), nil
	}
	metrics.GraphCacheRequests.WithLabelValues(metrics.ResultMiss).Inc()

	gen := g.generation()
	item, err := g.next.GetItem(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	g.addIfCurrent(gen, func() { g.items.Add(key, copyItem(item)) })
	return item, nil
}

// FindItem is not cached; name lookups only happen once per request root
func (g *cachedGraph) FindItem(ctx context.Context, kind domain.ItemKind, name string) (*domain.Item, error) {
	return g.next.FindItem(ctx, kind, name)
}

func (g *cachedGraph) GetRequirements(ctx context.Context, kind domain.ItemKind, id int64) ([]domain.RecipeRequirement, error) {
	key := domain.ItemRef{Kind: kind, ID: id}
	if reqs, ok := g.reqs.Get(key); ok {
		metrics.GraphCacheRequests.WithLabelValues(metrics.ResultHit).Inc()
		return append([]domain.RecipeRequirement(nil), reqs...), nil
	}
	metrics.GraphCacheRequests.WithLabelValues(metrics.ResultMiss).Inc()

	gen := g.generation()
	reqs, err := g.next.GetRequirements(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	g.addIfCurrent(gen, func() { g.reqs.Add(key, append([]domain.RecipeRequirement(nil), reqs...)) })
	return reqs, nil
}

func (g *cachedGraph) generation() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen
}

// addIfCurrent runs add unless a Purge happened after gen was read
func (g *cachedGraph) addIfCurrent(gen uint64, add func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gen == gen {
		add()
	}
}

// Purge drops every cached entry and discards reads still in flight
func (g *cachedGraph) Purge() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	g.items.Purge()
	g.reqs.Purge()
}

func copyItem(item *domain.Item) *domain.Item {
	if item == nil {
		return nil
	}
	c := *item
	return &c
}
