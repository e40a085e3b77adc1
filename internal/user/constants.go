package user

import "time"

// Log messages
const (
	LogMsgRegisterUserCalled = "RegisterUser called"
	LogMsgUserRegistered     = "User registered"
	LogErrFailedToUpsertUser = "Failed to upsert user"
	LogErrFailedToGetUser    = "Failed to get user"
)

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 5 * time.Minute
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"
