package domain

import (
	"fmt"
	"math"
	"strings"
)

// RecipeRequirement is a directed, weighted edge of the recipe graph:
// producing one batch of the recipe item consumes Quantity units of the ingredient.
type RecipeRequirement struct {
	ID             int64    `json:"id,omitempty"`
	RecipeKind     ItemKind `json:"recipe_kind"`
	RecipeID       int64    `json:"recipe_id"`
	IngredientKind ItemKind `json:"ingredient_kind"`
	IngredientID   int64    `json:"ingredient_id"`
	Quantity       float64  `json:"quantity"`
}

// Ingredient returns a reference to the consumed item
func (r RecipeRequirement) Ingredient() ItemRef {
	return ItemRef{Kind: r.IngredientKind, ID: r.IngredientID}
}

// Recipe returns a reference to the producing item
func (r RecipeRequirement) Recipe() ItemRef {
	return ItemRef{Kind: r.RecipeKind, ID: r.RecipeID}
}

// Dependent describes a recipe that consumes a given ingredient
type Dependent struct {
	RecipeKind     ItemKind `json:"recipe_kind"`
	RecipeID       int64    `json:"recipe_id"`
	Name           string   `json:"name"`
	OutputQuantity int      `json:"output_quantity"`
	QuantityNeeded float64  `json:"quantity_needed"`
}

// CatalogStats holds aggregate row counts
type CatalogStats struct {
	BaseMaterials int `json:"base_materials"`
	Materials     int `json:"materials"`
	Products      int `json:"products"`
	Requirements  int `json:"requirements"`
}

// SearchResult groups name matches by kind, each group ordered by name
type SearchResult struct {
	BaseMaterials []BaseMaterial `json:"base_materials"`
	Materials     []Material     `json:"materials"`
	Products      []Product      `json:"products"`
}

// Validate checks the parts of an edge that need no lookup: kinds, quantity and self-reference
func (r RecipeRequirement) Validate() error {
	if !r.RecipeKind.IsRecipe() {
		return fmt.Errorf("%w: recipe kind %q", ErrInvalidItemKind, r.RecipeKind)
	}
	if !r.IngredientKind.IsIngredient() {
		return fmt.Errorf("%w: ingredient kind %q", ErrInvalidItemKind, r.IngredientKind)
	}
	if err := ValidateQuantity(r.Quantity); err != nil {
		return err
	}
	if r.RecipeKind == r.IngredientKind && r.RecipeID == r.IngredientID {
		return fmt.Errorf("%w: %s %d lists itself", ErrCyclicRecipe, r.RecipeKind, r.RecipeID)
	}
	return nil
}

// ValidateQuantity rejects zero, negative, NaN and infinite quantities
func ValidateQuantity(q float64) error {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, q)
	}
	return nil
}

// ValidateName rejects names that are empty after trimming
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}

// NormalizeRecipe stamps the recipe reference onto a copy of reqs and validates every edge,
// including that no ingredient appears twice.
func NormalizeRecipe(kind ItemKind, id int64, reqs []RecipeRequirement) ([]RecipeRequirement, error) {
	out := make([]RecipeRequirement, len(reqs))
	seen := make(map[ItemRef]struct{}, len(reqs))
	for i, r := range reqs {
		r.ID = 0
		r.RecipeKind = kind
		r.RecipeID = id
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.Ingredient()]; dup {
			return nil, fmt.Errorf("%w: %s %d", ErrDuplicateIngredient, r.IngredientKind, r.IngredientID)
		}
		seen[r.Ingredient()] = struct{}{}
		out[i] = r
	}
	return out, nil
}

// RecipeIngredient is one ingredient line of a recipe joined with its name.
// Name is empty when the ingredient no longer resolves.
type RecipeIngredient struct {
	Kind     ItemKind `json:"kind"`
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
}

// Recipe is a craftable item together with its named ingredient list
type Recipe struct {
	Item        Item               `json:"item"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}
