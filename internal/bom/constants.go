package bom

// Engine defaults
const (
	DefaultMaxDepth    = 64
	DefaultParallelism = 4
)

// Operation labels for metrics and logs
const (
	OpCalculate = "calculate"
	OpMultiple  = "multiple"
	OpTree      = "tree"
	OpFormat    = "format"
)

// unknownBaseNameFmt names a tree leaf whose base material record is gone
const unknownBaseNameFmt = "unknown base material #%d"

// Log messages
const (
	LogMsgUnresolvedSkipped = "Expansion skipped unresolved ingredients"
	LogMsgExpansionFailed   = "Expansion failed"
)

// Error messages
const (
	ErrMsgGraphLookupFailed = "recipe graph lookup failed"
)
