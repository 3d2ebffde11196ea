package sqlite

// DriverName is the database/sql driver registered by modernc.org/sqlite
const DriverName = "sqlite"

// DefaultBusyTimeoutMS bounds how long a writer waits on a locked database
const DefaultBusyTimeoutMS = 5000

const (
	tableRequirements = "recipe_requirements"
	likeEscape        = `\`
)

// Error Messages
const (
	ErrMsgFailedToOpen              = "failed to open sqlite database"
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToScanRow           = "failed to scan row"
	ErrMsgFailedToParseTimestamp    = "failed to parse timestamp"
)
