package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// catalogCache keeps catalog reads in memory with time-based expiration.
// The planet list is stored under one key; spawn tables are keyed by planet id.
type catalogCache struct {
	planets *expirable.LRU[string, []domain.Planet]
	spawn   *expirable.LRU[int, []domain.SpawnEntry]
}

// newCatalogCache creates a cache holding up to size spawn tables for ttl
func newCatalogCache(size int, ttl time.Duration) *catalogCache {
	return &catalogCache{
		planets: expirable.NewLRU[string, []domain.Planet](1, nil, ttl),
		spawn:   expirable.NewLRU[int, []domain.SpawnEntry](size, nil, ttl),
	}
}

func (c *catalogCache) getPlanets() ([]domain.Planet, bool) {
	return c.planets.Get(cacheKeyPlanets)
}

func (c *catalogCache) setPlanets(planets []domain.Planet) {
	c.planets.Add(cacheKeyPlanets, planets)
}

func (c *catalogCache) getSpawnTable(planetID int) ([]domain.SpawnEntry, bool) {
	return c.spawn.Get(planetID)
}

func (c *catalogCache) setSpawnTable(planetID int, entries []domain.SpawnEntry) {
	c.spawn.Add(planetID, entries)
}

// Clear removes all entries, used after a catalog sync
func (c *catalogCache) Clear() {
	c.planets.Purge()
	c.spawn.Purge()
}
