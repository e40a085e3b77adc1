package catalog

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog config: %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil           = "config is nil"
	ErrMsgNoPlanetsDefined    = "no planets defined"
	ErrMsgNoResourcesDefined  = "no resources defined"
	ErrFmtDuplicatePlanet     = "%w: duplicate planet id %d"
	ErrFmtDuplicateResource   = "%w: duplicate resource id %d"
	ErrFmtPlanetInvalid       = "%w: planet %d: %s"
	ErrFmtResourceInvalid     = "%w: resource %d: %s"
	ErrFmtSpawnRateInvalid    = "%w: spawn rate for planet %d resource %d: %s"
	ErrMsgEmptyName           = "empty name"
	ErrMsgNonPositiveBaseTime = "base_time must be positive"
	ErrMsgMultiplierBelowOne  = "resource_multiplier must be at least 1"
	ErrMsgDangerOutOfRange    = "danger_level must be within 1..5"
	ErrMsgRarityOutOfRange    = "rarity must be within 1..5"
	ErrMsgNegativeBaseValue   = "negative base_value"
	ErrMsgNonPositiveRate     = "spawn_rate must be positive"
	ErrMsgUnknownPlanet       = "unknown planet"
	ErrMsgUnknownResource     = "unknown resource"
)

// Database operation error messages
const (
	ErrMsgBeginSyncFailed      = "failed to begin catalog sync: %w"
	ErrMsgUpsertResourceFailed = "failed to upsert resource %d: %w"
	ErrMsgUpsertPlanetFailed   = "failed to upsert planet %d: %w"
	ErrMsgReplaceSpawnFailed   = "failed to replace spawn table for planet %d: %w"
	ErrMsgCommitSyncFailed     = "failed to commit catalog sync: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgSyncCompleted = "Catalog sync completed"
	LogMsgCacheFilled   = "Catalog cache filled"
)

// ==================== Cache ====================

const (
	// DefaultCacheSize bounds the number of cached spawn tables
	DefaultCacheSize = 256

	cacheKeyPlanets = "planets"
)
