// Package memory implements repository.Catalog in process memory.
// It backs unit tests and the memory storage driver.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/repository"
)

type edgeKey struct {
	recipe     domain.ItemRef
	ingredient domain.ItemRef
}

// Catalog is a mutex-guarded, map-backed catalog
type Catalog struct {
	mu sync.RWMutex

	bases    map[int64]domain.BaseMaterial
	mats     map[int64]domain.Material
	prods    map[int64]domain.Product
	reqs     map[int64]domain.RecipeRequirement
	edges    map[edgeKey]int64
	sequence map[string]int64

	now func() time.Time
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		bases:    map[int64]domain.BaseMaterial{},
		mats:     map[int64]domain.Material{},
		prods:    map[int64]domain.Product{},
		reqs:     map[int64]domain.RecipeRequirement{},
		edges:    map[edgeKey]int64{},
		sequence: map[string]int64{},
		now:      time.Now,
	}
}

var _ repository.Catalog = (*Catalog)(nil)

// nextID hands out monotonically increasing ids per table; they survive ClearAll
func (c *Catalog) nextID(table string) int64 {
	c.sequence[table]++
	return c.sequence[table]
}

func duplicateName(kind domain.ItemKind, name string) error {
	return fmt.Errorf("%w: %s %q", domain.ErrDuplicateName, kind, name)
}

// nameTaken reports whether another row of kind already uses name
func (c *Catalog) nameTaken(kind domain.ItemKind, name string, exceptID int64) bool {
	switch kind {
	case domain.KindBase:
		for id, b := range c.bases {
			if b.Name == name && id != exceptID {
				return true
			}
		}
	case domain.KindMaterial:
		for id, m := range c.mats {
			if m.Name == name && id != exceptID {
				return true
			}
		}
	case domain.KindProduct:
		for id, p := range c.prods {
			if p.Name == name && id != exceptID {
				return true
			}
		}
	}
	return false
}

func (c *Catalog) exists(ref domain.ItemRef) bool {
	switch ref.Kind {
	case domain.KindBase:
		_, ok := c.bases[ref.ID]
		return ok
	case domain.KindMaterial:
		_, ok := c.mats[ref.ID]
		return ok
	case domain.KindProduct:
		_, ok := c.prods[ref.ID]
		return ok
	}
	return false
}

// ---- Base materials ----

func (c *Catalog) AddBaseMaterial(_ context.Context, m *domain.BaseMaterial) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nameTaken(domain.KindBase, m.Name, 0) {
		return 0, duplicateName(domain.KindBase, m.Name)
	}
	row := *m
	row.ID = c.nextID("base_materials")
	row.CreatedAt = c.now()
	c.bases[row.ID] = row
	return row.ID, nil
}

func (c *Catalog) GetBaseMaterialByID(_ context.Context, id int64) (*domain.BaseMaterial, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if b, ok := c.bases[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (c *Catalog) GetBaseMaterialByName(_ context.Context, name string) (*domain.BaseMaterial, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.bases {
		if b.Name == name {
			return &b, nil
		}
	}
	return nil, nil
}

// UpdateBaseMaterial is a no-op for unknown ids, like an UPDATE matching no rows
func (c *Catalog) UpdateBaseMaterial(_ context.Context, m *domain.BaseMaterial) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.bases[m.ID]
	if !ok {
		return nil
	}
	if c.nameTaken(domain.KindBase, m.Name, m.ID) {
		return duplicateName(domain.KindBase, m.Name)
	}
	cur.Name, cur.Description, cur.UnitCost = m.Name, m.Description, m.UnitCost
	c.bases[m.ID] = cur
	return nil
}

func (c *Catalog) DeleteBaseMaterial(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bases, id)
	return nil
}

func (c *Catalog) ListBaseMaterials(_ context.Context) ([]domain.BaseMaterial, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedValues(c.bases, func(b domain.BaseMaterial) string { return b.Name }), nil
}

// ---- Materials ----

func (c *Catalog) AddMaterial(_ context.Context, m *domain.Material) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nameTaken(domain.KindMaterial, m.Name, 0) {
		return 0, duplicateName(domain.KindMaterial, m.Name)
	}
	row := *m
	row.ID = c.nextID("materials")
	row.CreatedAt = c.now()
	c.mats[row.ID] = row
	return row.ID, nil
}

func (c *Catalog) GetMaterialByID(_ context.Context, id int64) (*domain.Material, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if m, ok := c.mats[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (c *Catalog) GetMaterialByName(_ context.Context, name string) (*domain.Material, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.mats {
		if m.Name == name {
			return &m, nil
		}
	}
	return nil, nil
}

func (c *Catalog) UpdateMaterial(_ context.Context, m *domain.Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.mats[m.ID]
	if !ok {
		return nil
	}
	if c.nameTaken(domain.KindMaterial, m.Name, m.ID) {
		return duplicateName(domain.KindMaterial, m.Name)
	}
	cur.Name, cur.OutputQuantity, cur.Description, cur.UnitPrice = m.Name, m.OutputQuantity, m.Description, m.UnitPrice
	c.mats[m.ID] = cur
	return nil
}

func (c *Catalog) DeleteMaterial(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropRecipe(domain.ItemRef{Kind: domain.KindMaterial, ID: id})
	delete(c.mats, id)
	return nil
}

func (c *Catalog) ListMaterials(_ context.Context) ([]domain.Material, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedValues(c.mats, func(m domain.Material) string { return m.Name }), nil
}

// ---- Products ----

func (c *Catalog) AddProduct(_ context.Context, p *domain.Product) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nameTaken(domain.KindProduct, p.Name, 0) {
		return 0, duplicateName(domain.KindProduct, p.Name)
	}
	row := *p
	row.ID = c.nextID("products")
	row.CreatedAt = c.now()
	c.prods[row.ID] = row
	return row.ID, nil
}

func (c *Catalog) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.prods[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (c *Catalog) GetProductByName(_ context.Context, name string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.prods {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (c *Catalog) UpdateProduct(_ context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.prods[p.ID]
	if !ok {
		return nil
	}
	if c.nameTaken(domain.KindProduct, p.Name, p.ID) {
		return duplicateName(domain.KindProduct, p.Name)
	}
	cur.Name, cur.OutputQuantity, cur.Description, cur.UnitPrice = p.Name, p.OutputQuantity, p.Description, p.UnitPrice
	c.prods[p.ID] = cur
	return nil
}

func (c *Catalog) DeleteProduct(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropRecipe(domain.ItemRef{Kind: domain.KindProduct, ID: id})
	delete(c.prods, id)
	return nil
}

func (c *Catalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedValues(c.prods, func(p domain.Product) string { return p.Name }), nil
}

// ---- Recipe requirements ----

// dropRecipe removes every outgoing edge of recipe; caller holds the write lock
func (c *Catalog) dropRecipe(recipe domain.ItemRef) {
	for id, r := range c.reqs {
		if r.Recipe() == recipe {
			delete(c.edges, edgeKey{recipe: recipe, ingredient: r.Ingredient()})
			delete(c.reqs, id)
		}
	}
}

// checkEdge validates endpoints and uniqueness; caller holds the lock
func (c *Catalog) checkEdge(req domain.RecipeRequirement) error {
	if !c.exists(req.Recipe()) {
		return fmt.Errorf("%w: recipe %s %d", domain.ErrItemNotFound, req.RecipeKind, req.RecipeID)
	}
	if !c.exists(req.Ingredient()) {
		return fmt.Errorf("%w: ingredient %s %d", domain.ErrItemNotFound, req.IngredientKind, req.IngredientID)
	}
	if _, dup := c.edges[edgeKey{recipe: req.Recipe(), ingredient: req.Ingredient()}]; dup {
		return fmt.Errorf("%w: %s %d", domain.ErrDuplicateIngredient, req.IngredientKind, req.IngredientID)
	}
	return nil
}

func (c *Catalog) insertEdge(req domain.RecipeRequirement) int64 {
	req.ID = c.nextID("recipe_requirements")
	c.reqs[req.ID] = req
	c.edges[edgeKey{recipe: req.Recipe(), ingredient: req.Ingredient()}] = req.ID
	return req.ID
}

func (c *Catalog) AddRequirement(_ context.Context, req *domain.RecipeRequirement) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkEdge(*req); err != nil {
		return 0, err
	}
	return c.insertEdge(*req), nil
}

func (c *Catalog) GetRequirements(_ context.Context, recipeKind domain.ItemKind, recipeID int64) ([]domain.RecipeRequirement, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	recipe := domain.ItemRef{Kind: recipeKind, ID: recipeID}
	out := []domain.RecipeRequirement{}
	for _, r := range c.reqs {
		if r.Recipe() == recipe {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b domain.RecipeRequirement) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (c *Catalog) DeleteRequirements(_ context.Context, recipeKind domain.ItemKind, recipeID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropRecipe(domain.ItemRef{Kind: recipeKind, ID: recipeID})
	return nil
}

// ReplaceRequirements validates the whole list before touching state
func (c *Catalog) ReplaceRequirements(_ context.Context, recipeKind domain.ItemKind, recipeID int64, reqs []domain.RecipeRequirement) error {
	edges, err := domain.NormalizeRecipe(recipeKind, recipeID, reqs)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	recipe := domain.ItemRef{Kind: recipeKind, ID: recipeID}
	if len(edges) > 0 && !c.exists(recipe) {
		return fmt.Errorf("%w: recipe %s %d", domain.ErrItemNotFound, recipeKind, recipeID)
	}
	for _, e := range edges {
		if !c.exists(e.Ingredient()) {
			return fmt.Errorf("%w: ingredient %s %d", domain.ErrItemNotFound, e.IngredientKind, e.IngredientID)
		}
	}

	c.dropRecipe(recipe)
	for _, e := range edges {
		c.insertEdge(e)
	}
	return nil
}

func (c *Catalog) FindDependents(_ context.Context, ingredientKind domain.ItemKind, ingredientID int64) ([]domain.Dependent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ingredient := domain.ItemRef{Kind: ingredientKind, ID: ingredientID}
	out := []domain.Dependent{}
	for _, r := range c.reqs {
		if r.Ingredient() != ingredient {
			continue
		}
		d := domain.Dependent{RecipeKind: r.RecipeKind, RecipeID: r.RecipeID, QuantityNeeded: r.Quantity}
		switch r.RecipeKind {
		case domain.KindMaterial:
			m, ok := c.mats[r.RecipeID]
			if !ok {
				continue
			}
			d.Name, d.OutputQuantity = m.Name, m.OutputQuantity
		case domain.KindProduct:
			p, ok := c.prods[r.RecipeID]
			if !ok {
				continue
			}
			d.Name, d.OutputQuantity = p.Name, p.OutputQuantity
		}
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b domain.Dependent) int {
		return cmp.Or(cmp.Compare(a.RecipeKind, b.RecipeKind), strings.Compare(a.Name, b.Name))
	})
	return out, nil
}

// ---- Catalog-wide ----

// Search matches names by case-folded substring, grouped by kind and ordered by name
func (c *Catalog) Search(_ context.Context, keyword string) (*domain.SearchResult, error) {
	fold := cases.Fold()
	needle := fold.String(keyword)
	match := func(name string) bool { return strings.Contains(fold.String(name), needle) }

	c.mu.RLock()
	defer c.mu.RUnlock()

	res := &domain.SearchResult{
		BaseMaterials: []domain.BaseMaterial{},
		Materials:     []domain.Material{},
		Products:      []domain.Product{},
	}
	for _, b := range sortedValues(c.bases, func(b domain.BaseMaterial) string { return b.Name }) {
		if match(b.Name) {
			res.BaseMaterials = append(res.BaseMaterials, b)
		}
	}
	for _, m := range sortedValues(c.mats, func(m domain.Material) string { return m.Name }) {
		if match(m.Name) {
			res.Materials = append(res.Materials, m)
		}
	}
	for _, p := range sortedValues(c.prods, func(p domain.Product) string { return p.Name }) {
		if match(p.Name) {
			res.Products = append(res.Products, p)
		}
	}
	return res, nil
}

func (c *Catalog) Stats(_ context.Context) (*domain.CatalogStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &domain.CatalogStats{
		BaseMaterials: len(c.bases),
		Materials:     len(c.mats),
		Products:      len(c.prods),
		Requirements:  len(c.reqs),
	}, nil
}

// ClearAll empties every table; id sequences keep counting
func (c *Catalog) ClearAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bases = map[int64]domain.BaseMaterial{}
	c.mats = map[int64]domain.Material{}
	c.prods = map[int64]domain.Product{}
	c.reqs = map[int64]domain.RecipeRequirement{}
	c.edges = map[edgeKey]int64{}
	return nil
}

func sortedValues[T any](m map[int64]T, name func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return strings.Compare(name(a), name(b)) })
	return out
}
