package database

import "time"

// Connection pool
const (
	// DefaultMinConnections is the number of idle connections kept warm when MaxConns allows it
	DefaultMinConnections = 2

	// ConnectTimeout bounds the initial ping
	ConnectTimeout = 10 * time.Second
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgInvalidMaxConns         = "max connections must be positive"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
