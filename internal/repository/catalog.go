package repository

import (
	"context"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// Catalog defines the interface for recipe catalog persistence (the item store).
// Lookups return (nil, nil) when the row does not exist.
type Catalog interface {
	// Base material operations
	AddBaseMaterial(ctx context.Context, m *domain.BaseMaterial) (int64, error)
	GetBaseMaterialByID(ctx context.Context, id int64) (*domain.BaseMaterial, error)
	GetBaseMaterialByName(ctx context.Context, name string) (*domain.BaseMaterial, error)
	UpdateBaseMaterial(ctx context.Context, m *domain.BaseMaterial) error
	DeleteBaseMaterial(ctx context.Context, id int64) error
	ListBaseMaterials(ctx context.Context) ([]domain.BaseMaterial, error)

	// Material operations
	AddMaterial(ctx context.Context, m *domain.Material) (int64, error)
	GetMaterialByID(ctx context.Context, id int64) (*domain.Material, error)
	GetMaterialByName(ctx context.Context, name string) (*domain.Material, error)
	UpdateMaterial(ctx context.Context, m *domain.Material) error
	// DeleteMaterial also removes the material's own requirement rows
	DeleteMaterial(ctx context.Context, id int64) error
	ListMaterials(ctx context.Context) ([]domain.Material, error)

	// Product operations
	AddProduct(ctx context.Context, p *domain.Product) (int64, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetProductByName(ctx context.Context, name string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	// DeleteProduct also removes the product's own requirement rows
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// Recipe requirement operations
	AddRequirement(ctx context.Context, req *domain.RecipeRequirement) (int64, error)
	GetRequirements(ctx context.Context, recipeKind domain.ItemKind, recipeID int64) ([]domain.RecipeRequirement, error)
	DeleteRequirements(ctx context.Context, recipeKind domain.ItemKind, recipeID int64) error
	// ReplaceRequirements swaps the full ingredient list of a recipe in one atomic unit
	ReplaceRequirements(ctx context.Context, recipeKind domain.ItemKind, recipeID int64, reqs []domain.RecipeRequirement) error
	FindDependents(ctx context.Context, ingredientKind domain.ItemKind, ingredientID int64) ([]domain.Dependent, error)

	// Catalog-wide operations
	Search(ctx context.Context, keyword string) (*domain.SearchResult, error)
	Stats(ctx context.Context) (*domain.CatalogStats, error)
	ClearAll(ctx context.Context) error
}

// Pinger is implemented by stores backed by a remote or file database
type Pinger interface {
	Ping(ctx context.Context) error
}
