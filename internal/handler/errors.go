package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidRequestFormat  = "Invalid request format"
	ErrMsgRequestTooLarge       = "Request body too large"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidPathID         = "Invalid id in path"
	ErrMsgInvalidPathKind       = "Invalid item kind in path"
	ErrMsgInvalidQuantityParam  = "Invalid quantity parameter"
	ErrMsgConfirmRequired       = "Pass confirm=true to clear the catalog"
)

// Success messages for API responses
const (
	MsgItemDeleted      = "Item deleted"
	MsgRecipeSaved      = "Recipe saved"
	MsgRecipeCleared    = "Recipe cleared"
	MsgCatalogCleared   = "Catalog cleared"
	MsgDanglingWarning  = "Item deleted; %d recipe(s) still reference it"
	MsgUnresolvedFormat = "%s %d no longer exists; its contribution was skipped"
)

// Operation names used in logs
const (
	OpCreateItem        = "Create item"
	OpUpdateItem        = "Update item"
	OpSetRecipe         = "Set recipe"
	OpAddRequirement    = "Add requirement"
	OpCalculate         = "Calculate requirements"
	OpBatch             = "Calculate batch"
	OpTree              = "Recipe tree"
	OpSearch            = "Search"
	OpStats             = "Stats"
	OpClearCatalog      = "Clear catalog"
	OpFindDependents    = "Find dependents"
	OpGetRecipe         = "Get recipe"
	OpGetItem           = "Get item"
	OpListItems         = "List items"
	OpDeleteItem        = "Delete item"
	OpDeleteRequirement = "Delete requirements"
)
