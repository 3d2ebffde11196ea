package repository

import (
	"context"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// Graph is the read-only view of the recipe graph consumed by the expansion engine.
// Lookups return (nil, nil) for a reference that does not resolve.
type Graph interface {
	GetItem(ctx context.Context, kind domain.ItemKind, id int64) (*domain.Item, error)
	FindItem(ctx context.Context, kind domain.ItemKind, name string) (*domain.Item, error)
	GetRequirements(ctx context.Context, kind domain.ItemKind, id int64) ([]domain.RecipeRequirement, error)
}
