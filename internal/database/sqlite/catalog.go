package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/repository"
)

const (
	baseColumns    = "id, name, description, cost, created_at"
	craftedColumns = "id, name, output_quantity, description, price, created_at"
	reqColumns     = "id, recipe_type, recipe_id, ingredient_type, ingredient_id, quantity"
)

// CatalogRepository implements repository.Catalog on SQLite
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository wraps an already migrated database
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ repository.Catalog = (*CatalogRepository)(nil)

// Ping checks the database file is reachable
func (r *CatalogRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the underlying database handle
func (r *CatalogRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBaseMaterial(s rowScanner) (*domain.BaseMaterial, error) {
	var m domain.BaseMaterial
	var created string
	if err := s.Scan(&m.ID, &m.Name, &m.Description, &m.UnitCost, &created); err != nil {
		return nil, err
	}
	t, err := parseTimestamp(created)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = t
	return &m, nil
}

// craftedRow is the shared column layout of materials and products
type craftedRow struct {
	id             int64
	name           string
	outputQuantity int
	description    string
	price          float64
	createdAt      string
}

func scanCrafted(s rowScanner) (*craftedRow, error) {
	var c craftedRow
	if err := s.Scan(&c.id, &c.name, &c.outputQuantity, &c.description, &c.price, &c.createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *craftedRow) material() (*domain.Material, error) {
	t, err := parseTimestamp(c.createdAt)
	if err != nil {
		return nil, err
	}
	return &domain.Material{ID: c.id, Name: c.name, OutputQuantity: c.outputQuantity, Description: c.description, UnitPrice: c.price, CreatedAt: t}, nil
}

func (c *craftedRow) product() (*domain.Product, error) {
	t, err := parseTimestamp(c.createdAt)
	if err != nil {
		return nil, err
	}
	return &domain.Product{ID: c.id, Name: c.name, OutputQuantity: c.outputQuantity, Description: c.description, UnitPrice: c.price, CreatedAt: t}, nil
}

// queryAll runs a query and converts every row with conv
func queryAll[T any](ctx context.Context, q querier, conv func(rowScanner) (*T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []T{}
	for rows.Next() {
		v, err := conv(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// queryOne returns nil, nil when no row matches
func queryOne[T any](ctx context.Context, q querier, conv func(rowScanner) (*T, error), query string, args ...any) (*T, error) {
	v, err := conv(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

func asMaterial(s rowScanner) (*domain.Material, error) {
	c, err := scanCrafted(s)
	if err != nil {
		return nil, err
	}
	return c.material()
}

func asProduct(s rowScanner) (*domain.Product, error) {
	c, err := scanCrafted(s)
	if err != nil {
		return nil, err
	}
	return c.product()
}

func insertID(ctx context.Context, q querier, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ---- Base materials ----

// AddBaseMaterial inserts a base material and returns its new id
func (r *CatalogRepository) AddBaseMaterial(ctx context.Context, m *domain.BaseMaterial) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	id, err := insertID(ctx, r.db,
		`INSERT INTO base_materials (name, description, cost) VALUES (?, ?, ?)`,
		m.Name, m.Description, m.UnitCost)
	if err != nil {
		return 0, translateError(err, "failed to add base material")
	}
	return id, nil
}

// GetBaseMaterialByID retrieves a base material by id
func (r *CatalogRepository) GetBaseMaterialByID(ctx context.Context, id int64) (*domain.BaseMaterial, error) {
	m, err := queryOne(ctx, r.db, scanBaseMaterial, `SELECT `+baseColumns+` FROM base_materials WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get base material: %w", err)
	}
	return m, nil
}

// GetBaseMaterialByName retrieves a base material by exact name
func (r *CatalogRepository) GetBaseMaterialByName(ctx context.Context, name string) (*domain.BaseMaterial, error) {
	m, err := queryOne(ctx, r.db, scanBaseMaterial, `SELECT `+baseColumns+` FROM base_materials WHERE name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get base material: %w", err)
	}
	return m, nil
}

// UpdateBaseMaterial replaces every mutable field of a base material
func (r *CatalogRepository) UpdateBaseMaterial(ctx context.Context, m *domain.BaseMaterial) error {
	if err := m.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE base_materials SET name = ?, description = ?, cost = ? WHERE id = ?`,
		m.Name, m.Description, m.UnitCost, m.ID)
	if err != nil {
		return translateError(err, "failed to update base material")
	}
	return nil
}

// DeleteBaseMaterial removes a base material; recipes referencing it are left untouched
func (r *CatalogRepository) DeleteBaseMaterial(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM base_materials WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete base material: %w", err)
	}
	return nil
}

// ListBaseMaterials returns every base material ordered by name
func (r *CatalogRepository) ListBaseMaterials(ctx context.Context) ([]domain.BaseMaterial, error) {
	list, err := queryAll(ctx, r.db, scanBaseMaterial, `SELECT `+baseColumns+` FROM base_materials ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list base materials: %w", err)
	}
	return list, nil
}

// ---- Materials ----

// AddMaterial inserts a material and returns its new id
func (r *CatalogRepository) AddMaterial(ctx context.Context, m *domain.Material) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	id, err := insertID(ctx, r.db,
		`INSERT INTO materials (name, output_quantity, description, price) VALUES (?, ?, ?, ?)`,
		m.Name, m.OutputQuantity, m.Description, m.UnitPrice)
	if err != nil {
		return 0, translateError(err, "failed to add material")
	}
	return id, nil
}

// GetMaterialByID retrieves a material by id
func (r *CatalogRepository) GetMaterialByID(ctx context.Context, id int64) (*domain.Material, error) {
	m, err := queryOne(ctx, r.db, asMaterial, `SELECT `+craftedColumns+` FROM materials WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return m, nil
}

// GetMaterialByName retrieves a material by exact name
func (r *CatalogRepository) GetMaterialByName(ctx context.Context, name string) (*domain.Material, error) {
	m, err := queryOne(ctx, r.db, asMaterial, `SELECT `+craftedColumns+` FROM materials WHERE name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return m, nil
}

// UpdateMaterial replaces every mutable field of a material
func (r *CatalogRepository) UpdateMaterial(ctx context.Context, m *domain.Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE materials SET name = ?, output_quantity = ?, description = ?, price = ? WHERE id = ?`,
		m.Name, m.OutputQuantity, m.Description, m.UnitPrice, m.ID)
	if err != nil {
		return translateError(err, "failed to update material")
	}
	return nil
}

// DeleteMaterial removes a material and its outgoing recipe edges in one transaction
func (r *CatalogRepository) DeleteMaterial(ctx context.Context, id int64) error {
	return r.deleteRecipeItem(ctx, domain.KindMaterial, id, `DELETE FROM materials WHERE id = ?`)
}

// ListMaterials returns every material ordered by name
func (r *CatalogRepository) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	list, err := queryAll(ctx, r.db, asMaterial, `SELECT `+craftedColumns+` FROM materials ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return list, nil
}

// ---- Products ----

// AddProduct inserts a product and returns its new id
func (r *CatalogRepository) AddProduct(ctx context.Context, p *domain.Product) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	id, err := insertID(ctx, r.db,
		`INSERT INTO products (name, output_quantity, description, price) VALUES (?, ?, ?, ?)`,
		p.Name, p.OutputQuantity, p.Description, p.UnitPrice)
	if err != nil {
		return 0, translateError(err, "failed to add product")
	}
	return id, nil
}

// GetProductByID retrieves a product by id
func (r *CatalogRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := queryOne(ctx, r.db, asProduct, `SELECT `+craftedColumns+` FROM products WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// GetProductByName retrieves a product by exact name
func (r *CatalogRepository) GetProductByName(ctx context.Context, name string) (*domain.Product, error) {
	p, err := queryOne(ctx, r.db, asProduct, `SELECT `+craftedColumns+` FROM products WHERE name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// UpdateProduct replaces every mutable field of a product
func (r *CatalogRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, output_quantity = ?, description = ?, price = ? WHERE id = ?`,
		p.Name, p.OutputQuantity, p.Description, p.UnitPrice, p.ID)
	if err != nil {
		return translateError(err, "failed to update product")
	}
	return nil
}

// DeleteProduct removes a product and its outgoing recipe edges in one transaction
func (r *CatalogRepository) DeleteProduct(ctx context.Context, id int64) error {
	return r.deleteRecipeItem(ctx, domain.KindProduct, id, `DELETE FROM products WHERE id = ?`)
}

// ListProducts returns every product ordered by name
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	list, err := queryAll(ctx, r.db, asProduct, `SELECT `+craftedColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return list, nil
}

func (r *CatalogRepository) deleteRecipeItem(ctx context.Context, kind domain.ItemKind, id int64, deleteRow string) error {
	return withTx(ctx, r.db, func(q querier) error {
		if _, err := q.ExecContext(ctx,
			`DELETE FROM recipe_requirements WHERE recipe_type = ? AND recipe_id = ?`, string(kind), id); err != nil {
			return fmt.Errorf("failed to delete recipe requirements: %w", err)
		}
		if _, err := q.ExecContext(ctx, deleteRow, id); err != nil {
			return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
		}
		return nil
	})
}

// ---- Recipe requirements ----

func scanRequirement(s rowScanner) (*domain.RecipeRequirement, error) {
	var req domain.RecipeRequirement
	var recipeKind, ingredientKind string
	if err := s.Scan(&req.ID, &recipeKind, &req.RecipeID, &ingredientKind, &req.IngredientID, &req.Quantity); err != nil {
		return nil, err
	}
	req.RecipeKind = domain.ItemKind(recipeKind)
	req.IngredientKind = domain.ItemKind(ingredientKind)
	return &req, nil
}

// AddRequirement validates and inserts one recipe edge
func (r *CatalogRepository) AddRequirement(ctx context.Context, req *domain.RecipeRequirement) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	var id int64
	err := withTx(ctx, r.db, func(q querier) error {
		var err error
		id, err = insertRequirement(ctx, q, *req)
		return err
	})
	return id, err
}

// GetRequirements returns the ingredient list of one recipe in insertion order
func (r *CatalogRepository) GetRequirements(ctx context.Context, recipeKind domain.ItemKind, recipeID int64) ([]domain.RecipeRequirement, error) {
	reqs, err := queryAll(ctx, r.db, scanRequirement,
		`SELECT `+reqColumns+` FROM recipe_requirements WHERE recipe_type = ? AND recipe_id = ? ORDER BY id`,
		string(recipeKind), recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe requirements: %w", err)
	}
	return reqs, nil
}

// DeleteRequirements removes every ingredient of one recipe
func (r *CatalogRepository) DeleteRequirements(ctx context.Context, recipeKind domain.ItemKind, recipeID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM recipe_requirements WHERE recipe_type = ? AND recipe_id = ?`, string(recipeKind), recipeID); err != nil {
		return fmt.Errorf("failed to delete recipe requirements: %w", err)
	}
	return nil
}

// ReplaceRequirements swaps a recipe's full ingredient list; nothing changes when any edge is rejected
func (r *CatalogRepository) ReplaceRequirements(ctx context.Context, recipeKind domain.ItemKind, recipeID int64, reqs []domain.RecipeRequirement) error {
	edges, err := domain.NormalizeRecipe(recipeKind, recipeID, reqs)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(q querier) error {
		if _, err := q.ExecContext(ctx,
			`DELETE FROM recipe_requirements WHERE recipe_type = ? AND recipe_id = ?`, string(recipeKind), recipeID); err != nil {
			return fmt.Errorf("failed to delete recipe requirements: %w", err)
		}
		for _, req := range edges {
			if _, err := insertRequirement(ctx, q, req); err != nil {
				return err
			}
		}
		return nil
	})
}

var existsQueries = map[domain.ItemKind]string{
	domain.KindBase:     `SELECT 1 FROM base_materials WHERE id = ?`,
	domain.KindMaterial: `SELECT 1 FROM materials WHERE id = ?`,
	domain.KindProduct:  `SELECT 1 FROM products WHERE id = ?`,
}

func itemExists(ctx context.Context, q querier, kind domain.ItemKind, id int64) (bool, error) {
	query, ok := existsQueries[kind]
	if !ok {
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, kind)
	}
	var one int
	err := q.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up %s %d: %w", kind, id, err)
	}
	return true, nil
}

func insertRequirement(ctx context.Context, q querier, req domain.RecipeRequirement) (int64, error) {
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

	id, err := insertID(ctx, q,
		`INSERT INTO recipe_requirements (recipe_type, recipe_id, ingredient_type, ingredient_id, quantity) VALUES (?, ?, ?, ?, ?)`,
		string(req.RecipeKind), req.RecipeID, string(req.IngredientKind), req.IngredientID, req.Quantity)
	if err != nil {
		return 0, translateError(err, "failed to add recipe requirement")
	}
	return id, nil
}

func scanDependent(s rowScanner) (*domain.Dependent, error) {
	var d domain.Dependent
	var kind string
	if err := s.Scan(&kind, &d.RecipeID, &d.Name, &d.OutputQuantity, &d.QuantityNeeded); err != nil {
		return nil, err
	}
	d.RecipeKind = domain.ItemKind(kind)
	return &d, nil
}

// FindDependents lists every recipe that consumes the given ingredient
func (r *CatalogRepository) FindDependents(ctx context.Context, ingredientKind domain.ItemKind, ingredientID int64) ([]domain.Dependent, error) {
	deps, err := queryAll(ctx, r.db, scanDependent, `
		SELECT DISTINCT rr.recipe_type, rr.recipe_id, m.name, m.output_quantity, rr.quantity
		FROM recipe_requirements rr
		JOIN materials m ON m.id = rr.recipe_id
		WHERE rr.recipe_type = 'material' AND rr.ingredient_type = ? AND rr.ingredient_id = ?
		UNION
		SELECT DISTINCT rr.recipe_type, rr.recipe_id, p.name, p.output_quantity, rr.quantity
		FROM recipe_requirements rr
		JOIN products p ON p.id = rr.recipe_id
		WHERE rr.recipe_type = 'product' AND rr.ingredient_type = ? AND rr.ingredient_id = ?
		ORDER BY 1, 3`,
		string(ingredientKind), ingredientID, string(ingredientKind), ingredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find dependents: %w", err)
	}
	return deps, nil
}

// ---- Catalog-wide ----

// Search matches names by substring (ASCII case-insensitive), grouped by kind
func (r *CatalogRepository) Search(ctx context.Context, keyword string) (*domain.SearchResult, error) {
	pattern := likePattern(keyword)
	const where = ` WHERE name LIKE ? ESCAPE '\' ORDER BY name`

	bases, err := queryAll(ctx, r.db, scanBaseMaterial, `SELECT `+baseColumns+` FROM base_materials`+where, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	mats, err := queryAll(ctx, r.db, asMaterial, `SELECT `+craftedColumns+` FROM materials`+where, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	prods, err := queryAll(ctx, r.db, asProduct, `SELECT `+craftedColumns+` FROM products`+where, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	return &domain.SearchResult{BaseMaterials: bases, Materials: mats, Products: prods}, nil
}

// Stats returns row counts for every table
func (r *CatalogRepository) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	var stats domain.CatalogStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM base_materials),
			(SELECT COUNT(*) FROM materials),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM recipe_requirements)`).
		Scan(&stats.BaseMaterials, &stats.Materials, &stats.Products, &stats.Requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to count catalog rows: %w", err)
	}
	return &stats, nil
}

// ClearAll empties every table in one transaction
func (r *CatalogRepository) ClearAll(ctx context.Context) error {
	return withTx(ctx, r.db, func(q querier) error {
		for _, table := range []string{"recipe_requirements", "products", "materials", "base_materials"} {
			if _, err := q.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}
