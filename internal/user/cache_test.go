package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

func TestCacheInvalidation(t *testing.T) {
	cache := newUserCache(CacheConfig{Size: 10, TTL: time.Minute})
	user := &domain.User{ID: "user-1", Username: "testuser", TelegramID: 123}

	cache.Set(user)

	retrieved, found := cache.Get(123)
	assert.True(t, found)
	assert.Equal(t, user, retrieved)

	cache.Invalidate(123)

	retrieved, found = cache.Get(123)
	assert.False(t, found)
	assert.Nil(t, retrieved)
}

func TestCacheReturnsCopies(t *testing.T) {
	cache := newUserCache(CacheConfig{Size: 10, TTL: time.Minute})
	user := &domain.User{ID: "user-1", TelegramID: 1, Username: "a"}
	cache.Set(user)

	user.Username = "changed"
	got, _ := cache.Get(1)
	assert.Equal(t, "a", got.Username)

	got.Username = "mutated"
	again, _ := cache.Get(1)
	assert.Equal(t, "a", again.Username)
}

func TestCacheVersionMismatch(t *testing.T) {
	cache := newUserCache(CacheConfig{Size: 10, TTL: time.Minute})
	cache.lru.Add(7, &cachedUserEntry{Version: "0.0", User: domain.User{ID: "old"}})

	_, found := cache.Get(7)
	assert.False(t, found)
	assert.Equal(t, 0, cache.lru.Len())
}

func TestCacheStats(t *testing.T) {
	cache := newUserCache(CacheConfig{Size: 10, TTL: time.Minute})

	stats := cache.GetStats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)
	assert.Equal(t, 0, stats.Size)

	cache.Get(1)
	stats = cache.GetStats()
	assert.Equal(t, int64(1), stats.Misses)

	cache.Set(&domain.User{ID: "user-1", TelegramID: 1})
	cache.Get(1)
	stats = cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestCacheConfig(t *testing.T) {
	cfg := DefaultCacheConfig()
	assert.Equal(t, 1000, cfg.Size)
	assert.Equal(t, 5*time.Minute, cfg.TTL)
}
