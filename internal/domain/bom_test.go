package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemKind(t *testing.T) {
	tests := []struct {
		kind       ItemKind
		valid      bool
		recipe     bool
		ingredient bool
	}{
		{KindBase, true, false, true},
		{KindMaterial, true, true, true},
		{KindProduct, true, true, false},
		{ItemKind("widget"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.kind.Valid())
			assert.Equal(t, tt.recipe, tt.kind.IsRecipe())
			assert.Equal(t, tt.ingredient, tt.kind.IsIngredient())
		})
	}
}

func TestRequirements_AddAndMerge(t *testing.T) {
	a := Requirements{1: 2, 2: 3}
	a.Add(1, 0.5)
	a.Merge(Requirements{2: 1, 3: 4})

	assert.Equal(t, Requirements{1: 2.5, 2: 4, 3: 4}, a)
}

func TestBOMNode_Leaves(t *testing.T) {
	tree := &BOMNode{
		Kind: KindProduct, ID: 1, Quantity: 1,
		Children: []*BOMNode{
			{Kind: KindBase, ID: 10, Quantity: 2},
			{Kind: KindMaterial, ID: 5, Quantity: 1, Children: []*BOMNode{
				{Kind: KindBase, ID: 10, Quantity: 3},
				{Kind: KindBase, ID: 11, Quantity: 1.5},
			}},
		},
	}

	assert.Equal(t, Requirements{10: 5, 11: 1.5}, tree.Leaves())

	var empty *BOMNode
	assert.Empty(t, empty.Leaves())
}
