package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// CatalogRepository implements the catalog repository for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ repository.Catalog = (*CatalogRepository)(nil)

const planetColumns = `planet_id, name, description, difficulty, base_time, resource_multiplier, danger_level, image_url`

func scanPlanet(row pgx.Row) (domain.Planet, error) {
	var p domain.Planet
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Difficulty, &p.BaseTime, &p.ResourceMultiplier, &p.DangerLevel, &p.ImageURL)
	return p, err
}

func (r *CatalogRepository) ListPlanets(ctx context.Context) ([]domain.Planet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planetColumns+` FROM planets ORDER BY difficulty, planet_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPlanets, err)
	}
	planets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Planet, error) {
		return scanPlanet(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPlanets, err)
	}
	return planets, nil
}

func (r *CatalogRepository) GetPlanet(ctx context.Context, id int) (*domain.Planet, error) {
	p, err := scanPlanet(r.db.QueryRow(ctx, `SELECT `+planetColumns+` FROM planets WHERE planet_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlanet, err)
	}
	return &p, nil
}

func (r *CatalogRepository) ListResources(ctx context.Context) ([]domain.Resource, error) {
	rows, err := r.db.Query(ctx, `
		SELECT resource_id, name, description, rarity, base_value, image_url
		FROM resources ORDER BY resource_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryResources, err)
	}
	resources, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Resource, error) {
		var res domain.Resource
		err := row.Scan(&res.ID, &res.Name, &res.Description, &res.Rarity, &res.BaseValue, &res.ImageURL)
		return res, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryResources, err)
	}
	return resources, nil
}

// GetSpawnTable returns the planet's spawn entries in a stable order
func (r *CatalogRepository) GetSpawnTable(ctx context.Context, planetID int) ([]domain.SpawnEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.resource_id, r.name, r.description, r.rarity, r.base_value, r.image_url, pr.spawn_rate
		FROM planet_resources pr
		JOIN resources r ON r.resource_id = pr.resource_id
		WHERE pr.planet_id = $1
		ORDER BY r.resource_id`, planetID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySpawnTable, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SpawnEntry, error) {
		var e domain.SpawnEntry
		err := row.Scan(&e.Resource.ID, &e.Resource.Name, &e.Resource.Description, &e.Resource.Rarity,
			&e.Resource.BaseValue, &e.Resource.ImageURL, &e.SpawnRate)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySpawnTable, err)
	}
	return entries, nil
}

// BeginCatalogTx starts a transaction for catalog synchronization
func (r *CatalogRepository) BeginCatalogTx(ctx context.Context) (repository.CatalogTx, error) {
	base, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &catalogTx{txBase: base}, nil
}

type catalogTx struct {
	txBase
}

func (t *catalogTx) UpsertPlanet(ctx context.Context, p domain.Planet) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO planets (`+planetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (planet_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			difficulty = EXCLUDED.difficulty,
			base_time = EXCLUDED.base_time,
			resource_multiplier = EXCLUDED.resource_multiplier,
			danger_level = EXCLUDED.danger_level,
			image_url = EXCLUDED.image_url`,
		p.ID, p.Name, p.Description, p.Difficulty, p.BaseTime, p.ResourceMultiplier, p.DangerLevel, p.ImageURL)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertPlanet, err)
	}
	return nil
}

func (t *catalogTx) UpsertResource(ctx context.Context, res domain.Resource) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO resources (resource_id, name, description, rarity, base_value, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (resource_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			rarity = EXCLUDED.rarity,
			base_value = EXCLUDED.base_value,
			image_url = EXCLUDED.image_url`,
		res.ID, res.Name, res.Description, res.Rarity, res.BaseValue, res.ImageURL)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertResource, err)
	}
	return nil
}

// ReplaceSpawnTable swaps the planet's spawn rows for the given set
func (t *catalogTx) ReplaceSpawnTable(ctx context.Context, planetID int, rates []domain.SpawnRate) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM planet_resources WHERE planet_id = $1`, planetID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToClearSpawnTable, err)
	}

	batch := &pgx.Batch{}
	for _, rate := range rates {
		batch.Queue(`INSERT INTO planet_resources (planet_id, resource_id, spawn_rate) VALUES ($1, $2, $3)`,
			planetID, rate.ResourceID, rate.SpawnRate)
	}
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertSpawnRate, err)
	}
	return nil
}
