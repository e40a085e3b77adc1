package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgInvalidUserID        = "invalid user id"
	ErrMsgFailedToUpsertUser   = "failed to upsert user"
	ErrMsgFailedToGetUser      = "failed to get user"
	ErrMsgFailedToGetInventory = "failed to get inventory"
	ErrMsgFailedToAddInventory = "failed to add inventory"
	ErrMsgFailedToAddCurrency  = "failed to add currency"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToQueryPlanets    = "failed to query planets"
	ErrMsgFailedToGetPlanet       = "failed to get planet"
	ErrMsgFailedToQueryResources  = "failed to query resources"
	ErrMsgFailedToQuerySpawnTable = "failed to query spawn table"
	ErrMsgFailedToUpsertPlanet    = "failed to upsert planet"
	ErrMsgFailedToUpsertResource  = "failed to upsert resource"
	ErrMsgFailedToClearSpawnTable = "failed to clear spawn table"
	ErrMsgFailedToInsertSpawnRate = "failed to insert spawn rate"
)

// Error Messages - Expedition Operations
const (
	ErrMsgFailedToCreateExpedition       = "failed to create expedition"
	ErrMsgFailedToGetExpedition          = "failed to get expedition"
	ErrMsgFailedToGetActiveExpedition    = "failed to get active expedition"
	ErrMsgFailedToAddExpeditionResource  = "failed to add expedition resource"
	ErrMsgFailedToQueryExpeditionLog     = "failed to query expedition resources"
	ErrMsgFailedToQueryExpeditions       = "failed to query expeditions"
	ErrMsgFailedToUpdateExpeditionStatus = "failed to update expedition status"
)

// Error Messages - Upgrade Operations
const (
	ErrMsgFailedToQueryUpgrades = "failed to query upgrades"
	ErrMsgFailedToInsertUpgrade = "failed to insert upgrade"
)

// Error Messages - Leaderboard Operations
const (
	ErrMsgFailedToUpsertLeaderboard = "failed to upsert leaderboard"
	ErrMsgFailedToQueryLeaderboard  = "failed to query leaderboard"
	ErrMsgFailedToGetUserRank       = "failed to get user rank"
)
