package catalog

// Write operation labels
const (
	OpAddBaseMaterial    = "add_base_material"
	OpAddMaterial        = "add_material"
	OpAddProduct         = "add_product"
	OpUpdateBaseMaterial = "update_base_material"
	OpUpdateMaterial     = "update_material"
	OpUpdateProduct      = "update_product"
	OpDeleteBaseMaterial = "delete_base_material"
	OpDeleteMaterial     = "delete_material"
	OpDeleteProduct      = "delete_product"
	OpSetRecipe          = "set_recipe"
	OpAddRequirement     = "add_requirement"
	OpDeleteRequirements = "delete_requirements"
	OpClearAll           = "clear_all"
)

// Log messages
const (
	LogMsgItemAdded         = "Catalog item added"
	LogMsgItemUpdated       = "Catalog item updated"
	LogMsgItemDeleted       = "Catalog item deleted"
	LogMsgDanglingReference = "Deleted item is still referenced by recipes"
	LogMsgRecipeReplaced    = "Recipe replaced"
	LogMsgRequirementAdded  = "Recipe requirement added"
	LogMsgRequirementsDrop  = "Recipe requirements deleted"
	LogMsgCatalogCleared    = "Catalog cleared"
	LogMsgGraphCachePurged  = "Recipe graph cache purged"
)

// Error messages
const (
	ErrMsgFailedToLookUpItem = "failed to look up item"
)
