package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// ConstraintRequirementEdge is the unique key over (recipe, ingredient) pairs
const ConstraintRequirementEdge = "recipe_requirements_edge_key"

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToAddBaseMaterial    = "failed to add base material"
	ErrMsgFailedToGetBaseMaterial    = "failed to get base material"
	ErrMsgFailedToUpdateBaseMaterial = "failed to update base material"
	ErrMsgFailedToDeleteBaseMaterial = "failed to delete base material"
	ErrMsgFailedToListBaseMaterials  = "failed to list base materials"

	ErrMsgFailedToAddMaterial    = "failed to add material"
	ErrMsgFailedToGetMaterial    = "failed to get material"
	ErrMsgFailedToUpdateMaterial = "failed to update material"
	ErrMsgFailedToListMaterials  = "failed to list materials"

	ErrMsgFailedToAddProduct    = "failed to add product"
	ErrMsgFailedToGetProduct    = "failed to get product"
	ErrMsgFailedToUpdateProduct = "failed to update product"
	ErrMsgFailedToListProducts  = "failed to list products"

	ErrMsgFailedToAddRequirement     = "failed to add recipe requirement"
	ErrMsgFailedToGetRequirements    = "failed to get recipe requirements"
	ErrMsgFailedToDeleteRequirements = "failed to delete recipe requirements"
	ErrMsgFailedToFindDependents     = "failed to find dependents"

	ErrMsgFailedToSearch       = "failed to search catalog"
	ErrMsgFailedToCountRows    = "failed to count catalog rows"
	ErrMsgFailedToClearCatalog = "failed to clear catalog"
)
