package domain

import (
	"fmt"
	"time"
)

// ItemKind identifies which of the three item tables a record lives in
type ItemKind string

const (
	KindBase     ItemKind = "base"
	KindMaterial ItemKind = "material"
	KindProduct  ItemKind = "product"
)

// Valid reports whether k is one of the known kinds
func (k ItemKind) Valid() bool {
	switch k {
	case KindBase, KindMaterial, KindProduct:
		return true
	}
	return false
}

// IsRecipe reports whether items of this kind are craftable (own a recipe)
func (k ItemKind) IsRecipe() bool {
	return k == KindMaterial || k == KindProduct
}

// IsIngredient reports whether items of this kind may be consumed by a recipe
func (k ItemKind) IsIngredient() bool {
	return k == KindBase || k == KindMaterial
}

// ParseItemKind converts a raw string into an ItemKind
func ParseItemKind(s string) (ItemKind, bool) {
	k := ItemKind(s)
	return k, k.Valid()
}

// BaseMaterial is a non-craftable ingredient; terminal node of any expansion
type BaseMaterial struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UnitCost    float64   `json:"unit_cost"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Material is a craftable intermediate good.
// One execution of its recipe yields OutputQuantity units.
type Material struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	OutputQuantity int       `json:"output_quantity"`
	Description    string    `json:"description,omitempty"`
	UnitPrice      float64   `json:"unit_price"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// Product is a top-level craftable good; never consumed as an ingredient
type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	OutputQuantity int       `json:"output_quantity"`
	Description    string    `json:"description,omitempty"`
	UnitPrice      float64   `json:"unit_price"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// Item is the kind-agnostic view of a catalog entry used by the expansion engine.
// OutputQuantity is always 1 for base materials; UnitCost is only set for them.
type Item struct {
	Kind           ItemKind `json:"kind"`
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	OutputQuantity int      `json:"output_quantity"`
	UnitCost       float64  `json:"unit_cost,omitempty"`
}

// ItemRef addresses an item without loading it
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   int64    `json:"id"`
}

// AsItem converts a base material into the engine view
func (b BaseMaterial) AsItem() *Item {
	return &Item{Kind: KindBase, ID: b.ID, Name: b.Name, OutputQuantity: 1, UnitCost: b.UnitCost}
}

// AsItem converts a material into the engine view
func (m Material) AsItem() *Item {
	return &Item{Kind: KindMaterial, ID: m.ID, Name: m.Name, OutputQuantity: m.OutputQuantity}
}

// AsItem converts a product into the engine view
func (p Product) AsItem() *Item {
	return &Item{Kind: KindProduct, ID: p.ID, Name: p.Name, OutputQuantity: p.OutputQuantity}
}

// Validate checks name and cost constraints
func (b BaseMaterial) Validate() error {
	if err := ValidateName(b.Name); err != nil {
		return err
	}
	if b.UnitCost < 0 {
		return fmt.Errorf("%w: unit cost must not be negative", ErrInvalidInput)
	}
	return nil
}

// Validate checks name, output quantity and price constraints
func (m Material) Validate() error {
	return validateCraftable(m.Name, m.OutputQuantity, m.UnitPrice)
}

// Validate checks name, output quantity and price constraints
func (p Product) Validate() error {
	return validateCraftable(p.Name, p.OutputQuantity, p.UnitPrice)
}

func validateCraftable(name string, outputQuantity int, price float64) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if outputQuantity < 1 {
		return fmt.Errorf("%w: output quantity must be at least 1 (got %d)", ErrInvalidQuantity, outputQuantity)
	}
	if price < 0 {
		return fmt.Errorf("%w: unit price must not be negative", ErrInvalidInput)
	}
	return nil
}
