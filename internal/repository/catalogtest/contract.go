// Package catalogtest holds the behavioural checks every repository.Catalog
// implementation must pass.
package catalogtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/repository"
)

// Factory returns an empty catalog for one subtest
type Factory func(t *testing.T) repository.Catalog

// Run executes the full catalog contract against stores built by newStore
func Run(t *testing.T, newStore Factory) {
	t.Run("BaseMaterialCRUD", func(t *testing.T) { testBaseMaterialCRUD(t, newStore(t)) })
	t.Run("MaterialCRUD", func(t *testing.T) { testMaterialCRUD(t, newStore(t)) })
	t.Run("ProductCRUD", func(t *testing.T) { testProductCRUD(t, newStore(t)) })
	t.Run("DuplicateNames", func(t *testing.T) { testDuplicateNames(t, newStore(t)) })
	t.Run("InvalidItems", func(t *testing.T) { testInvalidItems(t, newStore(t)) })
	t.Run("Requirements", func(t *testing.T) { testRequirements(t, newStore(t)) })
	t.Run("RequirementValidation", func(t *testing.T) { testRequirementValidation(t, newStore(t)) })
	t.Run("ReplaceRequirementsAtomic", func(t *testing.T) { testReplaceRequirementsAtomic(t, newStore(t)) })
	t.Run("DeleteCascadesOutgoingEdges", func(t *testing.T) { testDeleteCascade(t, newStore(t)) })
	t.Run("FindDependents", func(t *testing.T) { testFindDependents(t, newStore(t)) })
	t.Run("Search", func(t *testing.T) { testSearch(t, newStore(t)) })
	t.Run("StatsAndClearAll", func(t *testing.T) { testStatsAndClearAll(t, newStore(t)) })
}

// Fixture is the Ore / Ingot / Sword chain seeded by Seed
type Fixture struct {
	Ore, Coal    int64
	Ingot, Alloy int64
	Sword        int64
}

// Seed builds a small recipe graph:
//
//	Ingot (yields 2) = 2 Ore
//	Alloy (yields 1) = 1 Ingot + 3 Coal
//	Sword (yields 1) = 4 Ingot + 1 Alloy
func Seed(t *testing.T, store repository.Catalog) Fixture {
	t.Helper()
	ctx := context.Background()

	var f Fixture
	var err error
	f.Ore, err = store.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: "Ore", UnitCost: 2})
	require.NoError(t, err)
	f.Coal, err = store.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: "Coal", UnitCost: 0.5})
	require.NoError(t, err)
	f.Ingot, err = store.AddMaterial(ctx, &domain.Material{Name: "Ingot", OutputQuantity: 2})
	require.NoError(t, err)
	f.Alloy, err = store.AddMaterial(ctx, &domain.Material{Name: "Alloy", OutputQuantity: 1})
	require.NoError(t, err)
	f.Sword, err = store.AddProduct(ctx, &domain.Product{Name: "Sword", OutputQuantity: 1, UnitPrice: 50})
	require.NoError(t, err)

	edges := []domain.RecipeRequirement{
		{RecipeKind: domain.KindMaterial, RecipeID: f.Ingot, IngredientKind: domain.KindBase, IngredientID: f.Ore, Quantity: 2},
		{RecipeKind: domain.KindMaterial, RecipeID: f.Alloy, IngredientKind: domain.KindMaterial, IngredientID: f.Ingot, Quantity: 1},
		{RecipeKind: domain.KindMaterial, RecipeID: f.Alloy, IngredientKind: domain.KindBase, IngredientID: f.Coal, Quantity: 3},
		{RecipeKind: domain.KindProduct, RecipeID: f.Sword, IngredientKind: domain.KindMaterial, IngredientID: f.Ingot, Quantity: 4},
		{RecipeKind: domain.KindProduct, RecipeID: f.Sword, IngredientKind: domain.KindMaterial, IngredientID: f.Alloy, Quantity: 1},
	}
	for i := range edges {
		_, err := store.AddRequirement(ctx, &edges[i])
		require.NoError(t, err)
	}
	return f
}

func testBaseMaterialCRUD(t *testing.T, store repository.Catalog) {
	ctx := context.Background()

	id, err := store.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: "Iron Ore", Description: "raw", UnitCost: 1.5})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := store.GetBaseMaterialByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Iron Ore", got.Name)
	assert.Equal(t, "raw", got.Description)
	assert.InDelta(t, 1.5, got.UnitCost, 1e-9)

	byName, err := store.GetBaseMaterialByName(ctx, "Iron Ore")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, id, byName.ID)

	missing, err := store.GetBaseMaterialByName(ctx, "iron ore")
	require.NoError(t, err)
	assert.Nil(t, missing, "Name lookup is case-sensitive")

	got.Name = "Hematite"
	got.UnitCost = 3
	require.NoError(t, store.UpdateBaseMaterial(ctx, got))

	updated, err := store.GetBaseMaterialByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hematite", updated.Name)
	assert.InDelta(t, 3.0, updated.UnitCost, 1e-9)

	_, err = store.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: "Coal"})
	require.NoError(t, err)
	list, err := store.ListBaseMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Coal", list[0].Name, "List is ordered by name")
	assert.Equal(t, "Hematite", list[1].Name)

	require.NoError(t, store.DeleteBaseMaterial(ctx, id))
	gone, err := store.GetBaseMaterialByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	next, err := store.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: "Hematite"})
	require.NoError(t, err)
	assert.NotEqual(t, id, next, "Ids are never reused")
}

func testMaterialCRUD(t *testing.T, store repository.Catalog) {
	ctx := context.Background()

	id, err := store.AddMaterial(ctx, &domain.Material{Name: "Plank", OutputQuantity: 4, UnitPrice: 0.25})
	require.NoError(t, err)

	got, err := store.GetMaterialByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.OutputQuantity)
	assert.InDelta(t, 0.25, got.UnitPrice, 1e-9)

	got.OutputQuantity = 6
	require.NoError(t, store.UpdateMaterial(ctx, got))
	byName, err := store.GetMaterialByName(ctx, "Plank")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, 6, byName.OutputQuantity)

	list, err := store.ListMaterials(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	absent, err := store.GetMaterialByID(ctx, id+1000)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func testProductCRUD(t *testing.T, store repository.Catalog) {
	ctx := context.Background()

	id, err := store.AddProduct(ctx, &domain.Product{Name: "Chair", OutputQuantity: 1, UnitPrice: 12})
	require.NoError(t, err)

	got, err := store.GetProductByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Chair", got.Name)

	got.Description = "wooden"
	require.NoError(t, store.UpdateProduct(ctx, got))
	byName, err := store.GetProductByName(ctx, "Chair")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "wooden", byName.Description)

	require.NoError(t, store.DeleteProduct(ctx, id))
	list, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testDuplicateNames(t *testing.T, store repository.Catalog) {
	ctx := context.Background()

	_, err := store.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: "Iron"})
	require.NoError(t, err)
	_, err = store.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: "Iron"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	// Uniqueness is per kind
	_, err = store.AddMaterial(ctx, &domain.Material{Name: "Iron", OutputQuantity: 1})
	require.NoError(t, err)
	_, err = store.AddProduct(ctx, &domain.Product{Name: "Iron", OutputQuantity: 1})
	require.NoError(t, err)

	otherID, err := store.AddMaterial(ctx, &domain.Material{Name: "Steel", OutputQuantity: 1})
	require.NoError(t, err)
	err = store.UpdateMaterial(ctx, &domain.Material{ID: otherID, Name: "Iron", OutputQuantity: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicateName, "Rename onto an existing name is rejected")
}

func testInvalidItems(t *testing.T, store repository.Catalog) {
	ctx := context.Background()

	_, err := store.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.AddMaterial(ctx, &domain.Material{Name: "Gear", OutputQuantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = store.AddProduct(ctx, &domain.Product{Name: "Clock", OutputQuantity: 1, UnitPrice: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func testRequirements(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	f := Seed(t, store)

	reqs, err := store.GetRequirements(ctx, domain.KindProduct, f.Sword)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, domain.ItemRef{Kind: domain.KindMaterial, ID: f.Ingot}, reqs[0].Ingredient())
	assert.InDelta(t, 4.0, reqs[0].Quantity, 1e-9)
	assert.Equal(t, domain.ItemRef{Kind: domain.KindMaterial, ID: f.Alloy}, reqs[1].Ingredient())

	none, err := store.GetRequirements(ctx, domain.KindMaterial, f.Ore)
	require.NoError(t, err)
	assert.Empty(t, none, "Material id colliding with a base id has no recipe of its own")

	require.NoError(t, store.DeleteRequirements(ctx, domain.KindProduct, f.Sword))
	reqs, err = store.GetRequirements(ctx, domain.KindProduct, f.Sword)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func testRequirementValidation(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	f := Seed(t, store)

	tests := []struct {
		name    string
		req     domain.RecipeRequirement
		wantErr error
	}{
		{
			name:    "duplicate ingredient",
			req:     domain.RecipeRequirement{RecipeKind: domain.KindMaterial, RecipeID: f.Ingot, IngredientKind: domain.KindBase, IngredientID: f.Ore, Quantity: 1},
			wantErr: domain.ErrDuplicateIngredient,
		},
		{
			name:    "zero quantity",
			req:     domain.RecipeRequirement{RecipeKind: domain.KindMaterial, RecipeID: f.Ingot, IngredientKind: domain.KindBase, IngredientID: f.Coal, Quantity: 0},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "product as ingredient",
			req:     domain.RecipeRequirement{RecipeKind: domain.KindProduct, RecipeID: f.Sword, IngredientKind: domain.KindProduct, IngredientID: f.Sword, Quantity: 1},
			wantErr: domain.ErrInvalidItemKind,
		},
		{
			name:    "missing ingredient",
			req:     domain.RecipeRequirement{RecipeKind: domain.KindMaterial, RecipeID: f.Ingot, IngredientKind: domain.KindBase, IngredientID: 9999, Quantity: 1},
			wantErr: domain.ErrItemNotFound,
		},
		{
			name:    "missing recipe item",
			req:     domain.RecipeRequirement{RecipeKind: domain.KindProduct, RecipeID: 9999, IngredientKind: domain.KindBase, IngredientID: f.Ore, Quantity: 1},
			wantErr: domain.ErrItemNotFound,
		},
		{
			name:    "self reference",
			req:     domain.RecipeRequirement{RecipeKind: domain.KindMaterial, RecipeID: f.Alloy, IngredientKind: domain.KindMaterial, IngredientID: f.Alloy, Quantity: 1},
			wantErr: domain.ErrCyclicRecipe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := store.AddRequirement(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Requirements, "Rejected edges must not be stored")
}

func testReplaceRequirementsAtomic(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	f := Seed(t, store)

	err := store.ReplaceRequirements(ctx, domain.KindProduct, f.Sword, []domain.RecipeRequirement{
		{IngredientKind: domain.KindBase, IngredientID: f.Ore, Quantity: 10},
		{IngredientKind: domain.KindBase, IngredientID: 9999, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	reqs, err := store.GetRequirements(ctx, domain.KindProduct, f.Sword)
	require.NoError(t, err)
	assert.Len(t, reqs, 2, "Failed replace leaves the old list intact")

	err = store.ReplaceRequirements(ctx, domain.KindProduct, f.Sword, []domain.RecipeRequirement{
		{IngredientKind: domain.KindBase, IngredientID: f.Ore, Quantity: 10},
	})
	require.NoError(t, err)

	reqs, err = store.GetRequirements(ctx, domain.KindProduct, f.Sword)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, f.Ore, reqs[0].IngredientID)
	assert.InDelta(t, 10.0, reqs[0].Quantity, 1e-9)
}

func testDeleteCascade(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	f := Seed(t, store)

	require.NoError(t, store.DeleteMaterial(ctx, f.Alloy))

	own, err := store.GetRequirements(ctx, domain.KindMaterial, f.Alloy)
	require.NoError(t, err)
	assert.Empty(t, own, "Outgoing edges are removed with the item")

	sword, err := store.GetRequirements(ctx, domain.KindProduct, f.Sword)
	require.NoError(t, err)
	assert.Len(t, sword, 2, "Incoming edges are left dangling")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Requirements)
}

func testFindDependents(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	f := Seed(t, store)

	deps, err := store.FindDependents(ctx, domain.KindMaterial, f.Ingot)
	require.NoError(t, err)
	require.Len(t, deps, 2)

	byName := map[string]domain.Dependent{}
	for _, d := range deps {
		byName[d.Name] = d
	}
	assert.Equal(t, domain.KindMaterial, byName["Alloy"].RecipeKind)
	assert.InDelta(t, 1.0, byName["Alloy"].QuantityNeeded, 1e-9)
	assert.Equal(t, domain.KindProduct, byName["Sword"].RecipeKind)
	assert.Equal(t, f.Sword, byName["Sword"].RecipeID)
	assert.Equal(t, 1, byName["Sword"].OutputQuantity)
	assert.InDelta(t, 4.0, byName["Sword"].QuantityNeeded, 1e-9)

	none, err := store.FindDependents(ctx, domain.KindBase, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testSearch(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	Seed(t, store)
	_, err := store.AddBaseMaterial(ctx, &domain.BaseMaterial{Name: "Iron Ore"})
	require.NoError(t, err)
	_, err = store.AddMaterial(ctx, &domain.Material{Name: "Iron Ingot", OutputQuantity: 1})
	require.NoError(t, err)

	res, err := store.Search(ctx, "ore")
	require.NoError(t, err)
	require.Len(t, res.BaseMaterials, 2)
	assert.Equal(t, "Iron Ore", res.BaseMaterials[0].Name)
	assert.Equal(t, "Ore", res.BaseMaterials[1].Name)
	assert.Empty(t, res.Materials)
	assert.Empty(t, res.Products)

	res, err = store.Search(ctx, "INGOT")
	require.NoError(t, err)
	require.Len(t, res.Materials, 2)
	assert.Equal(t, "Ingot", res.Materials[0].Name)
	assert.Equal(t, "Iron Ingot", res.Materials[1].Name)

	res, err = store.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, res.BaseMaterials, "Wildcards in the keyword match literally")
}

func testStatsAndClearAll(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	Seed(t, store)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CatalogStats{BaseMaterials: 2, Materials: 2, Products: 1, Requirements: 5}, *stats)

	require.NoError(t, store.ClearAll(ctx))

	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CatalogStats{}, *stats)
}
