package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/singleflight"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/logger"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// Service provides cached, read-only access to the catalog
type Service interface {
	ListPlanets(ctx context.Context) ([]domain.Planet, error)
	// GetPlanet returns domain.ErrPlanetNotFound for unknown ids
	GetPlanet(ctx context.Context, id int) (*domain.Planet, error)
	GetSpawnTable(ctx context.Context, planetID int) ([]domain.SpawnEntry, error)
	// GetPlanetDetails returns the planet with its spawn table, rarest resources first
	GetPlanetDetails(ctx context.Context, id int) (*domain.PlanetDetails, error)
	ListResources(ctx context.Context) ([]domain.Resource, error)
	// FindPlanets fuzzy-matches planet names, best match first
	FindPlanets(ctx context.Context, query string) ([]domain.Planet, error)
	// Invalidate drops every cached entry
	Invalidate()
}

type service struct {
	repo  repository.Catalog
	cache *catalogCache
	group singleflight.Group
}

// NewService creates a new catalog service
func NewService(repo repository.Catalog, ttl time.Duration) Service {
	return &service{
		repo:  repo,
		cache: newCatalogCache(DefaultCacheSize, ttl),
	}
}

func (s *service) ListPlanets(ctx context.Context) ([]domain.Planet, error) {
	if planets, ok := s.cache.getPlanets(); ok {
		return planets, nil
	}

	v, err, _ := s.group.Do(cacheKeyPlanets, func() (interface{}, error) {
		planets, err := s.repo.ListPlanets(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.setPlanets(planets)
		logger.FromContext(ctx).Debug(LogMsgCacheFilled, "key", cacheKeyPlanets, "count", len(planets))
		return planets, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list planets: %w", err)
	}
	return v.([]domain.Planet), nil
}

func (s *service) GetPlanet(ctx context.Context, id int) (*domain.Planet, error) {
	planets, err := s.ListPlanets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range planets {
		if planets[i].ID == id {
			p := planets[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPlanetNotFound
}

func (s *service) GetSpawnTable(ctx context.Context, planetID int) ([]domain.SpawnEntry, error) {
	if entries, ok := s.cache.getSpawnTable(planetID); ok {
		return entries, nil
	}

	key := "spawn:" + strconv.Itoa(planetID)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		entries, err := s.repo.GetSpawnTable(ctx, planetID)
		if err != nil {
			return nil, err
		}
		s.cache.setSpawnTable(planetID, entries)
		logger.FromContext(ctx).Debug(LogMsgCacheFilled, "key", key, "count", len(entries))
		return entries, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get spawn table: %w", err)
	}
	return v.([]domain.SpawnEntry), nil
}

func (s *service) GetPlanetDetails(ctx context.Context, id int) (*domain.PlanetDetails, error) {
	planet, err := s.GetPlanet(ctx, id)
	if err != nil {
		return nil, err
	}
	table, err := s.GetSpawnTable(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cached slices are shared; sort a copy
	resources := make([]domain.SpawnEntry, len(table))
	copy(resources, table)
	sort.SliceStable(resources, func(i, j int) bool {
		return resources[i].Resource.Rarity > resources[j].Resource.Rarity
	})

	return &domain.PlanetDetails{Planet: *planet, Resources: resources}, nil
}

func (s *service) ListResources(ctx context.Context) ([]domain.Resource, error) {
	resources, err := s.repo.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

// planetNames implements fuzzy.Source over planet names
type planetNames []domain.Planet

func (p planetNames) Len() int { return len(p) }

func (p planetNames) String(i int) string { return strings.ToLower(p[i].Name) }

func (s *service) FindPlanets(ctx context.Context, query string) ([]domain.Planet, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidInput)
	}

	planets, err := s.ListPlanets(ctx)
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(query, planetNames(planets))
	results := make([]domain.Planet, 0, len(matches))
	for _, m := range matches {
		results = append(results, planets[m.Index])
	}
	return results, nil
}

func (s *service) Invalidate() {
	s.cache.Clear()
}
