package bom

import (
	"context"
	"fmt"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// walker holds the state of a single expansion call. It is never shared
// between goroutines.
type walker struct {
	ctx        context.Context
	e          *Engine
	acc        domain.Requirements
	unresolved []domain.ItemRef
	missed     map[domain.ItemRef]struct{}
	path       map[domain.ItemRef]struct{}
	stack      []domain.ItemRef
}

func (e *Engine) newWalker(ctx context.Context) *walker {
	return &walker{
		ctx:  ctx,
		e:    e,
		acc:    domain.Requirements{},
		missed: map[domain.ItemRef]struct{}{},
		path:   map[domain.ItemRef]struct{}{},
	}
}

// root loads the requested item; absence is an error at this level only
func (w *walker) root(kind domain.ItemKind, id int64, quantity float64) (*domain.Item, error) {
	if err := validateRoot(kind, quantity); err != nil {
		return nil, err
	}
	item, err := w.lookup(kind, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s %d", domain.ErrItemNotFound, kind, id)
	}
	return item, nil
}

func (w *walker) flatRoot(kind domain.ItemKind, id int64, quantity float64) error {
	item, err := w.root(kind, id, quantity)
	if err != nil {
		return err
	}
	return w.flatRecipe(item, quantity, 0)
}

func (w *walker) treeRoot(kind domain.ItemKind, id int64, quantity float64) (*domain.BOMNode, error) {
	item, err := w.root(kind, id, quantity)
	if err != nil {
		return nil, err
	}
	return w.treeRecipe(item, quantity, 0)
}

func (w *walker) flat(ref domain.ItemRef, quantity float64, depth int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	if ref.Kind == domain.KindBase && !w.e.opts.Strict {
		w.acc.Add(ref.ID, quantity)
		return nil
	}
	item, err := w.lookup(ref.Kind, ref.ID)
	if err != nil {
		return err
	}
	if item == nil {
		return w.miss(ref)
	}
	if ref.Kind == domain.KindBase {
		w.acc.Add(ref.ID, quantity)
		return nil
	}
	return w.flatRecipe(item, quantity, depth)
}

func (w *walker) flatRecipe(item *domain.Item, quantity float64, depth int) error {
	edges, err := w.enter(item, depth)
	if err != nil {
		return err
	}
	multiplier := quantity / batchSize(item)
	for _, edge := range edges {
		if err := w.flat(edge.Ingredient(), edge.Quantity*multiplier, depth+1); err != nil {
			return err
		}
	}
	w.leave(item)
	return nil
}

func (w *walker) tree(ref domain.ItemRef, quantity float64, depth int) (*domain.BOMNode, error) {
	if err := w.ctx.Err(); err != nil {
		return nil, err
	}
	item, err := w.lookup(ref.Kind, ref.ID)
	if err != nil {
		return nil, err
	}
	if ref.Kind == domain.KindBase {
		name := ""
		if item != nil {
			name = item.Name
		} else if w.e.opts.Strict {
			return nil, w.miss(ref)
		} else {
			name = fmt.Sprintf(unknownBaseNameFmt, ref.ID)
		}
		return &domain.BOMNode{ID: ref.ID, Kind: domain.KindBase, Name: name, Quantity: quantity, Children: []*domain.BOMNode{}}, nil
	}
	if item == nil {
		return nil, w.miss(ref)
	}
	return w.treeRecipe(item, quantity, depth)
}

func (w *walker) treeRecipe(item *domain.Item, quantity float64, depth int) (*domain.BOMNode, error) {
	edges, err := w.enter(item, depth)
	if err != nil {
		return nil, err
	}
	node := &domain.BOMNode{
		ID:             item.ID,
		Kind:           item.Kind,
		Name:           item.Name,
		Quantity:       quantity,
		OutputQuantity: item.OutputQuantity,
		Children:       make([]*domain.BOMNode, 0, len(edges)),
	}
	multiplier := quantity / batchSize(item)
	for _, edge := range edges {
		child, err := w.tree(edge.Ingredient(), edge.Quantity*multiplier, depth+1)
		if err != nil {
			return nil, err
		}
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}
	w.leave(item)
	return node, nil
}

// enter pushes a recipe onto the current path and loads its edges
func (w *walker) enter(item *domain.Item, depth int) ([]domain.RecipeRequirement, error) {
	ref := domain.ItemRef{Kind: item.Kind, ID: item.ID}
	if _, onPath := w.path[ref]; onPath {
		return nil, w.cycle(ref)
	}
	if depth > w.e.opts.MaxDepth {
		return nil, fmt.Errorf("%w: %s %d is nested deeper than %d levels", domain.ErrRecipeTooDeep, ref.Kind, ref.ID, w.e.opts.MaxDepth)
	}
	edges, err := w.e.graph.GetRequirements(w.ctx, ref.Kind, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGraphLookupFailed, err)
	}
	w.path[ref] = struct{}{}
	w.stack = append(w.stack, ref)
	return edges, nil
}

func (w *walker) leave(item *domain.Item) {
	delete(w.path, domain.ItemRef{Kind: item.Kind, ID: item.ID})
	w.stack = w.stack[:len(w.stack)-1]
}

func (w *walker) cycle(ref domain.ItemRef) error {
	start := 0
	for i, r := range w.stack {
		if r == ref {
			start = i
			break
		}
	}
	path := make([]domain.ItemRef, 0, len(w.stack)-start+1)
	path = append(path, w.stack[start:]...)
	path = append(path, ref)
	return &CyclicRecipeError{Path: path}
}

// miss records a dangling reference once per call, or fails in strict mode
func (w *walker) miss(ref domain.ItemRef) error {
	if w.e.opts.Strict {
		return fmt.Errorf("%w: %s %d", domain.ErrIngredientNotFound, ref.Kind, ref.ID)
	}
	if _, dup := w.missed[ref]; !dup {
		w.missed[ref] = struct{}{}
		w.unresolved = append(w.unresolved, ref)
	}
	return nil
}

func (w *walker) lookup(kind domain.ItemKind, id int64) (*domain.Item, error) {
	item, err := w.e.graph.GetItem(w.ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGraphLookupFailed, err)
	}
	return item, nil
}

func batchSize(item *domain.Item) float64 {
	if item.OutputQuantity < 1 {
		return 1
	}
	return float64(item.OutputQuantity)
}
