package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RecipeBOM_Go/internal/database/generated"
	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/repository"
)

// CatalogRepository implements repository.Catalog for PostgreSQL using sqlc
type CatalogRepository struct {
	pool *pgxpool.Pool
	q    *generated.Queries
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		pool: pool,
		q:    generated.New(pool),
	}
}

var _ repository.Catalog = (*CatalogRepository)(nil)

// Ping checks the pool can reach the database
func (r *CatalogRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---- Base materials ----

// AddBaseMaterial inserts a base material and returns its new id
func (r *CatalogRepository) AddBaseMaterial(ctx context.Context, m *domain.BaseMaterial) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	id, err := r.q.CreateBaseMaterial(ctx, generated.CreateBaseMaterialParams{
		Name:        m.Name,
		Description: m.Description,
		Cost:        m.UnitCost,
	})
	if err != nil {
		return 0, translateError(err, ErrMsgFailedToAddBaseMaterial)
	}
	return id, nil
}

// GetBaseMaterialByID retrieves a base material by id
func (r *CatalogRepository) GetBaseMaterialByID(ctx context.Context, id int64) (*domain.BaseMaterial, error) {
	row, err := r.q.GetBaseMaterialByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBaseMaterial, err)
	}
	return mapBaseMaterial(row), nil
}

// GetBaseMaterialByName retrieves a base material by exact name
func (r *CatalogRepository) GetBaseMaterialByName(ctx context.Context, name string) (*domain.BaseMaterial, error) {
	row, err := r.q.GetBaseMaterialByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBaseMaterial, err)
	}
	return mapBaseMaterial(row), nil
}

// UpdateBaseMaterial replaces every mutable field of a base material
func (r *CatalogRepository) UpdateBaseMaterial(ctx context.Context, m *domain.BaseMaterial) error {
	if err := m.Validate(); err != nil {
		return err
	}
	err := r.q.UpdateBaseMaterial(ctx, generated.UpdateBaseMaterialParams{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Cost:        m.UnitCost,
	})
	if err != nil {
		return translateError(err, ErrMsgFailedToUpdateBaseMaterial)
	}
	return nil
}

// DeleteBaseMaterial removes a base material; recipes referencing it are left untouched
func (r *CatalogRepository) DeleteBaseMaterial(ctx context.Context, id int64) error {
	if err := r.q.DeleteBaseMaterial(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteBaseMaterial, err)
	}
	return nil
}

// ListBaseMaterials returns every base material ordered by name
func (r *CatalogRepository) ListBaseMaterials(ctx context.Context) ([]domain.BaseMaterial, error) {
	rows, err := r.q.ListBaseMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBaseMaterials, err)
	}
	return mapBaseMaterials(rows), nil
}

// ---- Materials ----

// AddMaterial inserts a material and returns its new id
func (r *CatalogRepository) AddMaterial(ctx context.Context, m *domain.Material) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	outQty, err := toInt32(m.OutputQuantity)
	if err != nil {
		return 0, err
	}
	id, err := r.q.CreateMaterial(ctx, generated.CreateMaterialParams{
		Name:           m.Name,
		OutputQuantity: outQty,
		Description:    m.Description,
		Price:          m.UnitPrice,
	})
	if err != nil {
		return 0, translateError(err, ErrMsgFailedToAddMaterial)
	}
	return id, nil
}

// GetMaterialByID retrieves a material by id
func (r *CatalogRepository) GetMaterialByID(ctx context.Context, id int64) (*domain.Material, error) {
	row, err := r.q.GetMaterialByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMaterial, err)
	}
	return mapMaterial(row), nil
}

// GetMaterialByName retrieves a material by exact name
func (r *CatalogRepository) GetMaterialByName(ctx context.Context, name string) (*domain.Material, error) {
	row, err := r.q.GetMaterialByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMaterial, err)
	}
	return mapMaterial(row), nil
}

// UpdateMaterial replaces every mutable field of a material
func (r *CatalogRepository) UpdateMaterial(ctx context.Context, m *domain.Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	outQty, err := toInt32(m.OutputQuantity)
	if err != nil {
		return err
	}
	err = r.q.UpdateMaterial(ctx, generated.UpdateMaterialParams{
		ID:             m.ID,
		Name:           m.Name,
		OutputQuantity: outQty,
		Description:    m.Description,
		Price:          m.UnitPrice,
	})
	if err != nil {
		return translateError(err, ErrMsgFailedToUpdateMaterial)
	}
	return nil
}

// DeleteMaterial removes a material and its outgoing recipe edges in one transaction
func (r *CatalogRepository) DeleteMaterial(ctx context.Context, id int64) error {
	return r.deleteRecipeItem(ctx, domain.KindMaterial, id, func(q *generated.Queries) error {
		return q.DeleteMaterial(ctx, id)
	})
}

// ListMaterials returns every material ordered by name
func (r *CatalogRepository) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	rows, err := r.q.ListMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMaterials, err)
	}
	return mapMaterials(rows), nil
}

// ---- Products ----

// AddProduct inserts a product and returns its new id
func (r *CatalogRepository) AddProduct(ctx context.Context, p *domain.Product) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	outQty, err := toInt32(p.OutputQuantity)
	if err != nil {
		return 0, err
	}
	id, err := r.q.CreateProduct(ctx, generated.CreateProductParams{
		Name:           p.Name,
		OutputQuantity: outQty,
		Description:    p.Description,
		Price:          p.UnitPrice,
	})
	if err != nil {
		return 0, translateError(err, ErrMsgFailedToAddProduct)
	}
	return id, nil
}

// GetProductByID retrieves a product by id
func (r *CatalogRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	row, err := r.q.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProduct, err)
	}
	return mapProduct(row), nil
}

// GetProductByName retrieves a product by exact name
func (r *CatalogRepository) GetProductByName(ctx context.Context, name string) (*domain.Product, error) {
	row, err := r.q.GetProductByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProduct, err)
	}
	return mapProduct(row), nil
}

// UpdateProduct replaces every mutable field of a product
func (r *CatalogRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	outQty, err := toInt32(p.OutputQuantity)
	if err != nil {
		return err
	}
	err = r.q.UpdateProduct(ctx, generated.UpdateProductParams{
		ID:             p.ID,
		Name:           p.Name,
		OutputQuantity: outQty,
		Description:    p.Description,
		Price:          p.UnitPrice,
	})
	if err != nil {
		return translateError(err, ErrMsgFailedToUpdateProduct)
	}
	return nil
}

// DeleteProduct removes a product and its outgoing recipe edges in one transaction
func (r *CatalogRepository) DeleteProduct(ctx context.Context, id int64) error {
	return r.deleteRecipeItem(ctx, domain.KindProduct, id, func(q *generated.Queries) error {
		return q.DeleteProduct(ctx, id)
	})
}

// ListProducts returns every product ordered by name
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProducts, err)
	}
	return mapProducts(rows), nil
}

func (r *CatalogRepository) deleteRecipeItem(ctx context.Context, kind domain.ItemKind, id int64, deleteRow func(q *generated.Queries) error) error {
	h, err := beginTx(ctx, r.pool, r.q)
	if err != nil {
		return err
	}
	defer SafeRollback(ctx, h.Tx())

	if err := h.Queries().DeleteRequirements(ctx, generated.DeleteRequirementsParams{
		RecipeType: string(kind),
		RecipeID:   id,
	}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteRequirements, err)
	}
	if err := deleteRow(h.Queries()); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}
	return h.Commit(ctx)
}

// ---- Recipe requirements ----

// AddRequirement validates and inserts one recipe edge
func (r *CatalogRepository) AddRequirement(ctx context.Context, req *domain.RecipeRequirement) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	h, err := beginTx(ctx, r.pool, r.q)
	if err != nil {
		return 0, err
	}
	defer SafeRollback(ctx, h.Tx())

	id, err := insertRequirement(ctx, h.Queries(), *req)
	if err != nil {
		return 0, err
	}
	if err := h.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return id, nil
}

// GetRequirements returns the ingredient list of one recipe in insertion order
func (r *CatalogRepository) GetRequirements(ctx context.Context, recipeKind domain.ItemKind, recipeID int64) ([]domain.RecipeRequirement, error) {
	rows, err := r.q.GetRequirements(ctx, generated.GetRequirementsParams{
		RecipeType: string(recipeKind),
		RecipeID:   recipeID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRequirements, err)
	}

	reqs := make([]domain.RecipeRequirement, len(rows))
	for i, row := range rows {
		reqs[i] = domain.RecipeRequirement{
			ID:             row.ID,
			RecipeKind:     domain.ItemKind(row.RecipeType),
			RecipeID:       row.RecipeID,
			IngredientKind: domain.ItemKind(row.IngredientType),
			IngredientID:   row.IngredientID,
			Quantity:       row.Quantity,
		}
	}
	return reqs, nil
}

// DeleteRequirements removes every ingredient of one recipe
func (r *CatalogRepository) DeleteRequirements(ctx context.Context, recipeKind domain.ItemKind, recipeID int64) error {
	err := r.q.DeleteRequirements(ctx, generated.DeleteRequirementsParams{
		RecipeType: string(recipeKind),
		RecipeID:   recipeID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteRequirements, err)
	}
	return nil
}

// ReplaceRequirements swaps a recipe's full ingredient list; nothing changes when any edge is rejected
func (r *CatalogRepository) ReplaceRequirements(ctx context.Context, recipeKind domain.ItemKind, recipeID int64, reqs []domain.RecipeRequirement) error {
	edges, err := domain.NormalizeRecipe(recipeKind, recipeID, reqs)
	if err != nil {
		return err
	}

	h, err := beginTx(ctx, r.pool, r.q)
	if err != nil {
		return err
	}
	defer SafeRollback(ctx, h.Tx())

	if err := h.Queries().DeleteRequirements(ctx, generated.DeleteRequirementsParams{
		RecipeType: string(recipeKind),
		RecipeID:   recipeID,
	}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteRequirements, err)
	}

	for _, req := range edges {
		if _, err := insertRequirement(ctx, h.Queries(), req); err != nil {
			return err
		}
	}

	if err := h.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// insertRequirement checks both endpoints exist and writes the edge
func insertRequirement(ctx context.Context, q *generated.Queries, req domain.RecipeRequirement) (int64, error) {
	ok, err := itemExists(ctx, q, req.RecipeKind, req.RecipeID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: recipe %s %d", domain.ErrItemNotFound, req.RecipeKind, req.RecipeID)
	}
	ok, err = itemExists(ctx, q, req.IngredientKind, req.IngredientID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: ingredient %s %d", domain.ErrItemNotFound, req.IngredientKind, req.IngredientID)
	}

	id, err := q.CreateRequirement(ctx, generated.CreateRequirementParams{
		RecipeType:     string(req.RecipeKind),
		RecipeID:       req.RecipeID,
		IngredientType: string(req.IngredientKind),
		IngredientID:   req.IngredientID,
		Quantity:       req.Quantity,
	})
	if err != nil {
		return 0, translateError(err, ErrMsgFailedToAddRequirement)
	}
	return id, nil
}

// FindDependents lists every recipe that consumes the given ingredient
func (r *CatalogRepository) FindDependents(ctx context.Context, ingredientKind domain.ItemKind, ingredientID int64) ([]domain.Dependent, error) {
	matRows, err := r.q.FindMaterialDependents(ctx, generated.FindMaterialDependentsParams{
		IngredientType: string(ingredientKind),
		IngredientID:   ingredientID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToFindDependents, err)
	}
	prodRows, err := r.q.FindProductDependents(ctx, generated.FindProductDependentsParams{
		IngredientType: string(ingredientKind),
		IngredientID:   ingredientID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToFindDependents, err)
	}

	deps := make([]domain.Dependent, 0, len(matRows)+len(prodRows))
	for _, row := range matRows {
		deps = append(deps, domain.Dependent{
			RecipeKind:     domain.KindMaterial,
			RecipeID:       row.RecipeID,
			Name:           row.Name,
			OutputQuantity: int(row.OutputQuantity),
			QuantityNeeded: row.Quantity,
		})
	}
	for _, row := range prodRows {
		deps = append(deps, domain.Dependent{
			RecipeKind:     domain.KindProduct,
			RecipeID:       row.RecipeID,
			Name:           row.Name,
			OutputQuantity: int(row.OutputQuantity),
			QuantityNeeded: row.Quantity,
		})
	}
	return deps, nil
}

// ---- Catalog-wide ----

// Search matches names case-insensitively by substring, grouped by kind
func (r *CatalogRepository) Search(ctx context.Context, keyword string) (*domain.SearchResult, error) {
	pattern := likePattern(keyword)

	bases, err := r.q.SearchBaseMaterials(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSearch, err)
	}
	mats, err := r.q.SearchMaterials(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSearch, err)
	}
	prods, err := r.q.SearchProducts(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSearch, err)
	}

	return &domain.SearchResult{
		BaseMaterials: mapBaseMaterials(bases),
		Materials:     mapMaterials(mats),
		Products:      mapProducts(prods),
	}, nil
}

// Stats returns row counts for every table
func (r *CatalogRepository) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	var stats domain.CatalogStats
	counters := []struct {
		dst   *int
		count func(context.Context) (int64, error)
	}{
		{&stats.BaseMaterials, r.q.CountBaseMaterials},
		{&stats.Materials, r.q.CountMaterials},
		{&stats.Products, r.q.CountProducts},
		{&stats.Requirements, r.q.CountRequirements},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCountRows, err)
		}
		*c.dst = int(n)
	}
	return &stats, nil
}

// ClearAll empties every table in one transaction
func (r *CatalogRepository) ClearAll(ctx context.Context) error {
	h, err := beginTx(ctx, r.pool, r.q)
	if err != nil {
		return err
	}
	defer SafeRollback(ctx, h.Tx())

	q := h.Queries()
	for _, clear := range []func(context.Context) error{
		q.DeleteAllRequirements,
		q.DeleteAllProducts,
		q.DeleteAllMaterials,
		q.DeleteAllBaseMaterials,
	} {
		if err := clear(ctx); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToClearCatalog, err)
		}
	}

	if err := h.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}
