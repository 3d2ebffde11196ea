package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/logger"
	"github.com/osse101/RecipeBOM_Go/internal/metrics"
	"github.com/osse101/RecipeBOM_Go/internal/repository"
)

// IngredientInput is one line of a recipe edit
type IngredientInput struct {
	Kind     domain.ItemKind `json:"kind" validate:"required,oneof=base material"`
	ID       int64           `json:"id" validate:"required,gt=0"`
	Quantity float64         `json:"quantity" validate:"gt=0"`
}

// Options configures the service's graph cache; CacheSize 0 disables caching
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

// Service defines the catalog management operations
type Service interface {
	AddBaseMaterial(ctx context.Context, m *domain.BaseMaterial) (int64, error)
	AddMaterial(ctx context.Context, m *domain.Material) (int64, error)
	AddProduct(ctx context.Context, p *domain.Product) (int64, error)
	EnsureBaseMaterial(ctx context.Context, name string) (int64, error)
	EnsureMaterial(ctx context.Context, name string) (int64, error)

	UpdateBaseMaterial(ctx context.Context, m *domain.BaseMaterial) error
	UpdateMaterial(ctx context.Context, m *domain.Material) error
	UpdateProduct(ctx context.Context, p *domain.Product) error

	// Delete operations return the recipes left referencing the removed item
	DeleteBaseMaterial(ctx context.Context, id int64) ([]domain.Dependent, error)
	DeleteMaterial(ctx context.Context, id int64) ([]domain.Dependent, error)
	DeleteProduct(ctx context.Context, id int64) ([]domain.Dependent, error)

	GetBaseMaterial(ctx context.Context, id int64) (*domain.BaseMaterial, error)
	GetBaseMaterialByName(ctx context.Context, name string) (*domain.BaseMaterial, error)
	GetMaterial(ctx context.Context, id int64) (*domain.Material, error)
	GetMaterialByName(ctx context.Context, name string) (*domain.Material, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetProductByName(ctx context.Context, name string) (*domain.Product, error)
	ListBaseMaterials(ctx context.Context) ([]domain.BaseMaterial, error)
	ListMaterials(ctx context.Context) ([]domain.Material, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)

	GetRecipe(ctx context.Context, kind domain.ItemKind, id int64) (*domain.Recipe, error)
	SetRecipe(ctx context.Context, kind domain.ItemKind, id int64, ingredients []IngredientInput) error
	AddRequirement(ctx context.Context, req *domain.RecipeRequirement) (int64, error)
	GetRequirements(ctx context.Context, kind domain.ItemKind, id int64) ([]domain.RecipeRequirement, error)
	DeleteRequirements(ctx context.Context, kind domain.ItemKind, id int64) error
	FindDependents(ctx context.Context, kind domain.ItemKind, id int64) ([]domain.Dependent, error)

	Search(ctx context.Context, keyword string) (*domain.SearchResult, error)
	Stats(ctx context.Context) (*domain.CatalogStats, error)
	ClearAll(ctx context.Context) error

	// Graph returns the read view used by the expansion engine
	Graph() repository.Graph
	Ping(ctx context.Context) error
}

type service struct {
	store repository.Catalog
	graph repository.Graph
	cache *cachedGraph
}

// NewService creates a new catalog service
func NewService(store repository.Catalog, opts Options) Service {
	s := &service{store: store, graph: NewGraph(store)}
	if opts.CacheSize > 0 {
		s.cache = newCachedGraph(s.graph, opts.CacheSize, opts.CacheTTL)
		s.graph = s.cache
	}
	return s
}

func (s *service) Graph() repository.Graph {
	return s.graph
}

// Ping reports store health; stores without a connection are always ready
func (s *service) Ping(ctx context.Context) error {
	if p, ok := s.store.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// wrote purges the graph cache and counts the mutation
func (s *service) wrote(ctx context.Context, op string) {
	metrics.CatalogWrites.WithLabelValues(op).Inc()
	if s.cache != nil {
		s.cache.Purge()
		logger.FromContext(ctx).Debug(LogMsgGraphCachePurged, "operation", op)
	}
}

// ---- Add ----

func (s *service) AddBaseMaterial(ctx context.Context, m *domain.BaseMaterial) (int64, error) {
	m.Name = strings.TrimSpace(m.Name)
	id, err := s.store.AddBaseMaterial(ctx, m)
	if err != nil {
		return 0, err
	}
	m.ID = id
	s.wrote(ctx, OpAddBaseMaterial)
	logger.FromContext(ctx).Info(LogMsgItemAdded, "kind", domain.KindBase, "id", id, "name", m.Name)
	return id, nil
}

func (s *service) AddMaterial(ctx context.Context, m *domain.Material) (int64, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.OutputQuantity == 0 {
		m.OutputQuantity = 1
	}
	id, err := s.store.AddMaterial(ctx, m)
	if err != nil {
		return 0, err
	}
	m.ID = id
	s.wrote(ctx, OpAddMaterial)
	logger.FromContext(ctx).Info(LogMsgItemAdded, "kind", domain.KindMaterial, "id", id, "name", m.Name)
	return id, nil
}

func (s *service) AddProduct(ctx context.Context, p *domain.Product) (int64, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.OutputQuantity == 0 {
		p.OutputQuantity = 1
	}
	id, err := s.store.AddProduct(ctx, p)
	if err != nil {
		return 0, err
	}
	p.ID = id
	s.wrote(ctx, OpAddProduct)
	logger.FromContext(ctx).Info(LogMsgItemAdded, "kind", domain.KindProduct, "id", id, "name", p.Name)
	return id, nil
}

// EnsureBaseMaterial returns the id of the named base material, creating it when missing
func (s *service) EnsureBaseMaterial(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	existing, err := s.store.GetBaseMaterialByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}
	return s.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: name})
}

// EnsureMaterial returns the id of the named material, creating it with output quantity 1 when missing
func (s *service) EnsureMaterial(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	existing, err := s.store.GetMaterialByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}
	return s.AddMaterial(ctx, &domain.Material{Name: name, OutputQuantity: 1})
}

// ---- Update ----

func (s *service) UpdateBaseMaterial(ctx context.Context, m *domain.BaseMaterial) error {
	if _, err := s.GetBaseMaterial(ctx, m.ID); err != nil {
		return err
	}
	m.Name = strings.TrimSpace(m.Name)
	if err := s.store.UpdateBaseMaterial(ctx, m); err != nil {
		return err
	}
	s.wrote(ctx, OpUpdateBaseMaterial)
	logger.FromContext(ctx).Info(LogMsgItemUpdated, "kind", domain.KindBase, "id", m.ID)
	return nil
}

func (s *service) UpdateMaterial(ctx context.Context, m *domain.Material) error {
	if _, err := s.GetMaterial(ctx, m.ID); err != nil {
		return err
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.OutputQuantity == 0 {
		m.OutputQuantity = 1
	}
	if err := s.store.UpdateMaterial(ctx, m); err != nil {
		return err
	}
	s.wrote(ctx, OpUpdateMaterial)
	logger.FromContext(ctx).Info(LogMsgItemUpdated, "kind", domain.KindMaterial, "id", m.ID)
	return nil
}

func (s *service) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if _, err := s.GetProduct(ctx, p.ID); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.OutputQuantity == 0 {
		p.OutputQuantity = 1
	}
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return err
	}
	s.wrote(ctx, OpUpdateProduct)
	logger.FromContext(ctx).Info(LogMsgItemUpdated, "kind", domain.KindProduct, "id", p.ID)
	return nil
}

// ---- Delete ----

func (s *service) DeleteBaseMaterial(ctx context.Context, id int64) ([]domain.Dependent, error) {
	if _, err := s.GetBaseMaterial(ctx, id); err != nil {
		return nil, err
	}
	return s.deleteItem(ctx, domain.KindBase, id, OpDeleteBaseMaterial, s.store.DeleteBaseMaterial)
}

func (s *service) DeleteMaterial(ctx context.Context, id int64) ([]domain.Dependent, error) {
	if _, err := s.GetMaterial(ctx, id); err != nil {
		return nil, err
	}
	return s.deleteItem(ctx, domain.KindMaterial, id, OpDeleteMaterial, s.store.DeleteMaterial)
}

func (s *service) DeleteProduct(ctx context.Context, id int64) ([]domain.Dependent, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	return s.deleteItem(ctx, domain.KindProduct, id, OpDeleteProduct, s.store.DeleteProduct)
}

func (s *service) deleteItem(ctx context.Context, kind domain.ItemKind, id int64, op string, del func(context.Context, int64) error) ([]domain.Dependent, error) {
	var deps []domain.Dependent
	if kind.IsIngredient() {
		var err error
		if deps, err = s.store.FindDependents(ctx, kind, id); err != nil {
			return nil, err
		}
	}
	if err := del(ctx, id); err != nil {
		return nil, err
	}
	s.wrote(ctx, op)

	log := logger.FromContext(ctx)
	log.Info(LogMsgItemDeleted, "kind", kind, "id", id)
	if len(deps) > 0 {
		log.Warn(LogMsgDanglingReference, "kind", kind, "id", id, "dependents", len(deps))
	}
	return deps, nil
}

// ---- Get / List ----

func (s *service) GetBaseMaterial(ctx context.Context, id int64) (*domain.BaseMaterial, error) {
	m, err := s.store.GetBaseMaterialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: base material %d", domain.ErrItemNotFound, id)
	}
	return m, nil
}

func (s *service) GetBaseMaterialByName(ctx context.Context, name string) (*domain.BaseMaterial, error) {
	m, err := s.store.GetBaseMaterialByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: base material %q", domain.ErrItemNotFound, name)
	}
	return m, nil
}

func (s *service) GetMaterial(ctx context.Context, id int64) (*domain.Material, error) {
	m, err := s.store.GetMaterialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: material %d", domain.ErrItemNotFound, id)
	}
	return m, nil
}

func (s *service) GetMaterialByName(ctx context.Context, name string) (*domain.Material, error) {
	m, err := s.store.GetMaterialByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: material %q", domain.ErrItemNotFound, name)
	}
	return m, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrItemNotFound, id)
	}
	return p, nil
}

func (s *service) GetProductByName(ctx context.Context, name string) (*domain.Product, error) {
	p, err := s.store.GetProductByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %q", domain.ErrItemNotFound, name)
	}
	return p, nil
}

func (s *service) ListBaseMaterials(ctx context.Context) ([]domain.BaseMaterial, error) {
	return s.store.ListBaseMaterials(ctx)
}

func (s *service) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	return s.store.ListMaterials(ctx)
}

func (s *service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx)
}

// ---- Recipes ----

// recipeItem loads the craftable item a recipe belongs to
func (s *service) recipeItem(ctx context.Context, kind domain.ItemKind, id int64) (*domain.Item, error) {
	if !kind.IsRecipe() {
		return nil, fmt.Errorf("%w: %q has no recipe", domain.ErrInvalidItemKind, kind)
	}
	item, err := NewGraph(s.store).GetItem(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLookUpItem, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s %d", domain.ErrItemNotFound, kind, id)
	}
	return item, nil
}

// GetRecipe returns a recipe with ingredient names resolved
func (s *service) GetRecipe(ctx context.Context, kind domain.ItemKind, id int64) (*domain.Recipe, error) {
	item, err := s.recipeItem(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	reqs, err := s.store.GetRequirements(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	graph := NewGraph(s.store)
	recipe := &domain.Recipe{Item: *item, Ingredients: make([]domain.RecipeIngredient, 0, len(reqs))}
	for _, r := range reqs {
		line := domain.RecipeIngredient{Kind: r.IngredientKind, ID: r.IngredientID, Quantity: r.Quantity}
		ing, err := graph.GetItem(ctx, r.IngredientKind, r.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing != nil {
			line.Name = ing.Name
		}
		recipe.Ingredients = append(recipe.Ingredients, line)
	}
	return recipe, nil
}

// SetRecipe atomically replaces a recipe's ingredient list
func (s *service) SetRecipe(ctx context.Context, kind domain.ItemKind, id int64, ingredients []IngredientInput) error {
	if _, err := s.recipeItem(ctx, kind, id); err != nil {
		return err
	}

	reqs := make([]domain.RecipeRequirement, len(ingredients))
	for i, in := range ingredients {
		reqs[i] = domain.RecipeRequirement{
			IngredientKind: in.Kind,
			IngredientID:   in.ID,
			Quantity:       in.Quantity,
		}
	}
	if err := s.store.ReplaceRequirements(ctx, kind, id, reqs); err != nil {
		return err
	}
	s.wrote(ctx, OpSetRecipe)
	logger.FromContext(ctx).Info(LogMsgRecipeReplaced, "kind", kind, "id", id, "ingredients", len(reqs))
	return nil
}

func (s *service) AddRequirement(ctx context.Context, req *domain.RecipeRequirement) (int64, error) {
	id, err := s.store.AddRequirement(ctx, req)
	if err != nil {
		return 0, err
	}
	req.ID = id
	s.wrote(ctx, OpAddRequirement)
	logger.FromContext(ctx).Debug(LogMsgRequirementAdded,
		"recipe_kind", req.RecipeKind, "recipe_id", req.RecipeID,
		"ingredient_kind", req.IngredientKind, "ingredient_id", req.IngredientID)
	return id, nil
}

func (s *service) GetRequirements(ctx context.Context, kind domain.ItemKind, id int64) ([]domain.RecipeRequirement, error) {
	return s.store.GetRequirements(ctx, kind, id)
}

func (s *service) DeleteRequirements(ctx context.Context, kind domain.ItemKind, id int64) error {
	if err := s.store.DeleteRequirements(ctx, kind, id); err != nil {
		return err
	}
	s.wrote(ctx, OpDeleteRequirements)
	logger.FromContext(ctx).Info(LogMsgRequirementsDrop, "kind", kind, "id", id)
	return nil
}

func (s *service) FindDependents(ctx context.Context, kind domain.ItemKind, id int64) ([]domain.Dependent, error) {
	if !kind.IsIngredient() {
		return nil, fmt.Errorf("%w: %q is never an ingredient", domain.ErrInvalidItemKind, kind)
	}
	return s.store.FindDependents(ctx, kind, id)
}

// ---- Catalog-wide ----

func (s *service) Search(ctx context.Context, keyword string) (*domain.SearchResult, error) {
	return s.store.Search(ctx, strings.TrimSpace(keyword))
}

func (s *service) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	return s.store.Stats(ctx)
}

func (s *service) ClearAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}
	s.wrote(ctx, OpClearAll)
	logger.FromContext(ctx).Warn(LogMsgCatalogCleared)
	return nil
}
