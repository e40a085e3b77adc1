package user

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// CacheConfig holds configuration for the user cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedUserEntry wraps a user with version metadata for cache invalidation
type cachedUserEntry struct {
	Version  string
	User     domain.User
	CachedAt time.Time
}

// userCache maps Telegram ids to users with time-based expiration
// and version-based invalidation.
type userCache struct {
	lru    *expirable.LRU[int64, *cachedUserEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newUserCache(cfg CacheConfig) *userCache {
	return &userCache{
		lru: expirable.NewLRU[int64, *cachedUserEntry](cfg.Size, nil, cfg.TTL),
	}
}

// Get returns a copy of the cached user. Entries with a stale schema version are dropped.
func (c *userCache) Get(telegramID int64) (*domain.User, bool) {
	entry, found := c.lru.Get(telegramID)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(telegramID)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	u := entry.User
	return &u, true
}

// Set stores a copy of the user under its Telegram id
func (c *userCache) Set(user *domain.User) {
	c.lru.Add(user.TelegramID, &cachedUserEntry{
		Version:  CacheSchemaVersion,
		User:     *user,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a user from the cache
func (c *userCache) Invalidate(telegramID int64) {
	c.lru.Remove(telegramID)
}

// GetStats returns hit/miss counters and the current size
func (c *userCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
