package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Item errors
	ErrMsgItemNotFound       = "item not found"
	ErrMsgIngredientNotFound = "ingredient not found"
	ErrMsgDuplicateName      = "name already exists"
	ErrMsgInvalidItemKind    = "invalid item kind"

	// Recipe errors
	ErrMsgDuplicateIngredient = "ingredient already listed for recipe"
	ErrMsgCyclicRecipe        = "cyclic recipe"
	ErrMsgRecipeTooDeep       = "recipe too deep"

	// Validation errors
	ErrMsgInvalidQuantity = "invalid quantity"
	ErrMsgInvalidInput    = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrItemNotFound is returned when the root of a request does not exist
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)
	// ErrIngredientNotFound is returned in strict mode for a dangling non-root reference
	ErrIngredientNotFound = errors.New(ErrMsgIngredientNotFound)
	ErrDuplicateName      = errors.New(ErrMsgDuplicateName)
	ErrInvalidItemKind    = errors.New(ErrMsgInvalidItemKind)

	ErrDuplicateIngredient = errors.New(ErrMsgDuplicateIngredient)
	ErrCyclicRecipe        = errors.New(ErrMsgCyclicRecipe)
	ErrRecipeTooDeep       = errors.New(ErrMsgRecipeTooDeep)

	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
)
