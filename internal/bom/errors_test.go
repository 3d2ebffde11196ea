package bom

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/metrics"
)

func TestErrorReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: product 1", domain.ErrItemNotFound), metrics.ReasonNotFound},
		{fmt.Errorf("%w: material 2", domain.ErrIngredientNotFound), metrics.ReasonDangling},
		{&CyclicRecipeError{}, metrics.ReasonCyclic},
		{domain.ErrRecipeTooDeep, metrics.ReasonTooDeep},
		{domain.ErrInvalidQuantity, metrics.ReasonInvalid},
		{domain.ErrInvalidItemKind, metrics.ReasonInvalid},
		{fmt.Errorf("%s: %w", ErrMsgGraphLookupFailed, context.DeadlineExceeded), metrics.ReasonCanceled},
		{errors.New("disk full"), metrics.ReasonStore},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorReason(tt.err), tt.err.Error())
	}
}

func TestCyclicRecipeError_Self(t *testing.T) {
	g := newFakeGraph().
		recipe(domain.KindMaterial, ingotID, "Ingot", 1).
		needs(domain.KindMaterial, ingotID, domain.KindMaterial, ingotID, 1)
	e := NewEngine(g, Options{})

	_, err := e.Expand(context.Background(), domain.KindMaterial, ingotID, 1)

	var cyc *CyclicRecipeError
	assert.ErrorAs(t, err, &cyc)
	assert.Len(t, cyc.Path, 2)
	assert.EqualError(t, err, "cyclic recipe: material 10 -> material 10")
}
