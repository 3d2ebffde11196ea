package bom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/metrics"
)

// CyclicRecipeError reports a recipe that transitively requires itself.
// Path starts and ends with the repeated item.
type CyclicRecipeError struct {
	Path []domain.ItemRef
}

func (e *CyclicRecipeError) Error() string {
	parts := make([]string, len(e.Path))
	for i, ref := range e.Path {
		parts[i] = fmt.Sprintf("%s %d", ref.Kind, ref.ID)
	}
	return fmt.Sprintf("%s: %s", domain.ErrMsgCyclicRecipe, strings.Join(parts, " -> "))
}

func (e *CyclicRecipeError) Unwrap() error {
	return domain.ErrCyclicRecipe
}

// errorReason maps an expansion error onto a bounded metric label
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return metrics.ReasonNotFound
	case errors.Is(err, domain.ErrIngredientNotFound):
		return metrics.ReasonDangling
	case errors.Is(err, domain.ErrCyclicRecipe):
		return metrics.ReasonCyclic
	case errors.Is(err, domain.ErrRecipeTooDeep):
		return metrics.ReasonTooDeep
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidItemKind):
		return metrics.ReasonInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ReasonCanceled
	default:
		return metrics.ReasonStore
	}
}
