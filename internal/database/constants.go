package database

// DefaultMinConnections keeps a couple of warm connections for expansion reads
const DefaultMinConnections = 2

// Migration dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Error messages
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgUnknownDialect           = "unknown migration dialect"
	ErrMsgFailedToLoadMigrations   = "failed to load migrations"
	ErrMsgFailedToApplyMigrations  = "failed to apply migrations"
	ErrMsgFailedToReadVersion      = "failed to read schema version"
)

// Log messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Connected to catalog database"
	LogMsgMigrationApplied                = "Applied catalog migration"
	LogMsgMigrationsUpToDate              = "Catalog schema is up to date"
)
