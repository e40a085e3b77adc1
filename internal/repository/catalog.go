package repository

import (
	"context"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// Catalog defines read access to planets, resources and spawn tables
type Catalog interface {
	ListPlanets(ctx context.Context) ([]domain.Planet, error)
	// GetPlanet returns nil, nil when the planet does not exist
	GetPlanet(ctx context.Context, id int) (*domain.Planet, error)
	ListResources(ctx context.Context) ([]domain.Resource, error)
	GetSpawnTable(ctx context.Context, planetID int) ([]domain.SpawnEntry, error)

	BeginCatalogTx(ctx context.Context) (CatalogTx, error)
}

// CatalogTx upserts catalog rows inside one transaction
type CatalogTx interface {
	Tx
	UpsertPlanet(ctx context.Context, planet domain.Planet) error
	UpsertResource(ctx context.Context, resource domain.Resource) error
	ReplaceSpawnTable(ctx context.Context, planetID int, rates []domain.SpawnRate) error
}
