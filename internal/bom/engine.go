// Package bom expands recipe requests into base-material requirements.
//
// The engine is a pure function of the recipe graph it is given: every call
// re-reads the graph and keeps no state between calls. Quantities are float64
// and never rounded; a recipe yielding 3 units asked for 5 scales every
// ingredient by 5/3.
package bom

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/logger"
	"github.com/osse101/RecipeBOM_Go/internal/metrics"
	"github.com/osse101/RecipeBOM_Go/internal/repository"
)

// Options tunes expansion behaviour
type Options struct {
	// Strict turns dangling non-root references into ErrIngredientNotFound
	// instead of skipping them.
	Strict bool
	// MaxDepth bounds recipe nesting below the root; <= 0 means DefaultMaxDepth.
	MaxDepth int
	// Parallelism caps concurrent expansions in a multi-item request; <= 0 means DefaultParallelism.
	Parallelism int
}

// Engine expands requests against a recipe graph
type Engine struct {
	graph repository.Graph
	opts  Options
}

// NewEngine creates an engine reading from graph
func NewEngine(graph repository.Graph, opts Options) *Engine {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = DefaultParallelism
	}
	return &Engine{graph: graph, opts: opts}
}

// Options returns the effective options after defaults were applied
func (e *Engine) Options() Options {
	return e.opts
}

// CalculateRequirementsByID returns base material totals for one request
func (e *Engine) CalculateRequirementsByID(ctx context.Context, kind domain.ItemKind, id int64, quantity float64) (domain.Requirements, error) {
	exp, err := e.Expand(ctx, kind, id, quantity)
	if err != nil {
		return nil, err
	}
	return exp.Requirements, nil
}

// CalculateRequirementsByName resolves the root by exact name, then expands it
func (e *Engine) CalculateRequirementsByName(ctx context.Context, kind domain.ItemKind, name string, quantity float64) (domain.Requirements, error) {
	exp, err := e.ExpandByName(ctx, kind, name, quantity)
	if err != nil {
		return nil, err
	}
	return exp.Requirements, nil
}

// CalculateMultipleItems sums the requirements of every request into one map
func (e *Engine) CalculateMultipleItems(ctx context.Context, reqs []domain.BOMRequest) (domain.Requirements, error) {
	exp, err := e.ExpandMultiple(ctx, reqs)
	if err != nil {
		return nil, err
	}
	return exp.Requirements, nil
}

// Expand returns base material totals for one request plus any dangling references skipped
func (e *Engine) Expand(ctx context.Context, kind domain.ItemKind, id int64, quantity float64) (*domain.Expansion, error) {
	start := time.Now()
	w := e.newWalker(ctx)
	if err := w.flatRoot(kind, id, quantity); err != nil {
		e.observeError(ctx, OpCalculate, err)
		return nil, err
	}
	e.observe(ctx, OpCalculate, start, w.unresolved)
	return &domain.Expansion{Requirements: w.acc, Unresolved: w.unresolved}, nil
}

// ExpandByName is Expand with the root looked up by exact name within kind
func (e *Engine) ExpandByName(ctx context.Context, kind domain.ItemKind, name string, quantity float64) (*domain.Expansion, error) {
	if err := validateRoot(kind, quantity); err != nil {
		e.observeError(ctx, OpCalculate, err)
		return nil, err
	}
	item, err := e.graph.FindItem(ctx, kind, name)
	if err != nil {
		err = fmt.Errorf("%s: %w", ErrMsgGraphLookupFailed, err)
		e.observeError(ctx, OpCalculate, err)
		return nil, err
	}
	if item == nil {
		err := fmt.Errorf("%w: %s %q", domain.ErrItemNotFound, kind, name)
		e.observeError(ctx, OpCalculate, err)
		return nil, err
	}
	return e.Expand(ctx, kind, item.ID, quantity)
}

// ExpandMultiple expands every request concurrently and merges them in request order.
// The first failure cancels the remaining expansions.
func (e *Engine) ExpandMultiple(ctx context.Context, reqs []domain.BOMRequest) (*domain.Expansion, error) {
	start := time.Now()
	metrics.BOMBatchSize.Observe(float64(len(reqs)))

	results := make([]*walker, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Parallelism)
	for i, req := range reqs {
		g.Go(func() error {
			w := e.newWalker(gctx)
			if err := w.flatRoot(req.Kind, req.ID, req.Quantity); err != nil {
				return fmt.Errorf("item %d (%s %d): %w", i+1, req.Kind, req.ID, err)
			}
			results[i] = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.observeError(ctx, OpMultiple, err)
		return nil, err
	}

	// Each walker reports a ref once; the same ref can still come from several requests.
	out := &domain.Expansion{Requirements: domain.Requirements{}}
	seen := map[domain.ItemRef]struct{}{}
	for _, w := range results {
		out.Requirements.Merge(w.acc)
		for _, ref := range w.unresolved {
			if _, dup := seen[ref]; !dup {
				seen[ref] = struct{}{}
				out.Unresolved = append(out.Unresolved, ref)
			}
		}
	}
	e.observe(ctx, OpMultiple, start, out.Unresolved)
	return out, nil
}

// GetRecipeTree returns the full expansion tree with absolute quantities at every node
func (e *Engine) GetRecipeTree(ctx context.Context, kind domain.ItemKind, id int64, quantity float64) (*domain.BOMNode, error) {
	exp, err := e.ExpandTree(ctx, kind, id, quantity)
	if err != nil {
		return nil, err
	}
	return exp.Root, nil
}

// ExpandTree is GetRecipeTree plus the dangling references omitted from the tree
func (e *Engine) ExpandTree(ctx context.Context, kind domain.ItemKind, id int64, quantity float64) (*domain.TreeExpansion, error) {
	start := time.Now()
	w := e.newWalker(ctx)
	root, err := w.treeRoot(kind, id, quantity)
	if err != nil {
		e.observeError(ctx, OpTree, err)
		return nil, err
	}
	e.observe(ctx, OpTree, start, w.unresolved)
	return &domain.TreeExpansion{Root: root, Unresolved: w.unresolved}, nil
}

func validateRoot(kind domain.ItemKind, quantity float64) error {
	if !kind.IsRecipe() {
		return fmt.Errorf("%w: %q cannot be expanded, want material or product", domain.ErrInvalidItemKind, kind)
	}
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuantity, quantity)
	}
	return nil
}

func (e *Engine) observe(ctx context.Context, op string, start time.Time, unresolved []domain.ItemRef) {
	metrics.BOMExpansions.WithLabelValues(op).Inc()
	metrics.BOMExpansionDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if len(unresolved) > 0 {
		metrics.BOMUnresolved.Add(float64(len(unresolved)))
		logger.FromContext(ctx).Warn(LogMsgUnresolvedSkipped,
			"operation", op,
			"count", len(unresolved),
			"items", unresolved)
	}
}

func (e *Engine) observeError(ctx context.Context, op string, err error) {
	reason := errorReason(err)
	metrics.BOMExpansionErrors.WithLabelValues(reason).Inc()
	logger.FromContext(ctx).Debug(LogMsgExpansionFailed, "operation", op, "reason", reason, "error", err)
}
