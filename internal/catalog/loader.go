package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/logger"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// ErrInvalidConfig is returned for catalog files that fail validation
var ErrInvalidConfig = errors.New("invalid catalog configuration")

// Config is the YAML seed for the static catalog
type Config struct {
	Version    string             `yaml:"version"`
	Planets    []domain.Planet    `yaml:"planets"`
	Resources  []domain.Resource  `yaml:"resources"`
	SpawnRates []domain.SpawnRate `yaml:"spawn_rates"`
}

// Loader handles loading, validating and syncing the catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog) (*SyncResult, error)
}

// SyncResult contains the counts written by a catalog sync
type SyncResult struct {
	PlanetsUpserted   int
	ResourcesUpserted int
	SpawnRatesWritten int
}

type catalogLoader struct{}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{}
}

// Load reads and parses a catalog YAML file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks ids, ranges and spawn-rate references
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(config.Planets) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoPlanetsDefined)
	}
	if len(config.Resources) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoResourcesDefined)
	}

	planets := make(map[int]bool, len(config.Planets))
	for _, p := range config.Planets {
		if planets[p.ID] {
			return fmt.Errorf(ErrFmtDuplicatePlanet, ErrInvalidConfig, p.ID)
		}
		planets[p.ID] = true
		if err := validatePlanet(p); err != nil {
			return err
		}
	}

	resources := make(map[int]bool, len(config.Resources))
	for _, r := range config.Resources {
		if resources[r.ID] {
			return fmt.Errorf(ErrFmtDuplicateResource, ErrInvalidConfig, r.ID)
		}
		resources[r.ID] = true
		if err := validateResource(r); err != nil {
			return err
		}
	}

	for _, sr := range config.SpawnRates {
		switch {
		case !planets[sr.PlanetID]:
			return fmt.Errorf(ErrFmtSpawnRateInvalid, ErrInvalidConfig, sr.PlanetID, sr.ResourceID, ErrMsgUnknownPlanet)
		case !resources[sr.ResourceID]:
			return fmt.Errorf(ErrFmtSpawnRateInvalid, ErrInvalidConfig, sr.PlanetID, sr.ResourceID, ErrMsgUnknownResource)
		case sr.SpawnRate <= 0:
			return fmt.Errorf(ErrFmtSpawnRateInvalid, ErrInvalidConfig, sr.PlanetID, sr.ResourceID, ErrMsgNonPositiveRate)
		}
	}

	return nil
}

func validatePlanet(p domain.Planet) error {
	switch {
	case p.Name == "":
		return fmt.Errorf(ErrFmtPlanetInvalid, ErrInvalidConfig, p.ID, ErrMsgEmptyName)
	case p.BaseTime <= 0:
		return fmt.Errorf(ErrFmtPlanetInvalid, ErrInvalidConfig, p.ID, ErrMsgNonPositiveBaseTime)
	case p.ResourceMultiplier < 1:
		return fmt.Errorf(ErrFmtPlanetInvalid, ErrInvalidConfig, p.ID, ErrMsgMultiplierBelowOne)
	case p.DangerLevel < 1 || p.DangerLevel > 5:
		return fmt.Errorf(ErrFmtPlanetInvalid, ErrInvalidConfig, p.ID, ErrMsgDangerOutOfRange)
	}
	return nil
}

func validateResource(r domain.Resource) error {
	switch {
	case r.Name == "":
		return fmt.Errorf(ErrFmtResourceInvalid, ErrInvalidConfig, r.ID, ErrMsgEmptyName)
	case r.Rarity < domain.RarityCommon || r.Rarity > domain.RarityLegendary:
		return fmt.Errorf(ErrFmtResourceInvalid, ErrInvalidConfig, r.ID, ErrMsgRarityOutOfRange)
	case r.BaseValue < 0:
		return fmt.Errorf(ErrFmtResourceInvalid, ErrInvalidConfig, r.ID, ErrMsgNegativeBaseValue)
	}
	return nil
}

// SyncToDatabase upserts the catalog in one transaction. Spawn tables are
// replaced per planet so removed entries disappear.
func (l *catalogLoader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	tx, err := repo.BeginCatalogTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginSyncFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	result := &SyncResult{}

	for _, r := range config.Resources {
		if err := tx.UpsertResource(ctx, r); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertResourceFailed, r.ID, err)
		}
		result.ResourcesUpserted++
	}

	ratesByPlanet := make(map[int][]domain.SpawnRate, len(config.Planets))
	for _, sr := range config.SpawnRates {
		ratesByPlanet[sr.PlanetID] = append(ratesByPlanet[sr.PlanetID], sr)
	}

	for _, p := range config.Planets {
		if err := tx.UpsertPlanet(ctx, p); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertPlanetFailed, p.ID, err)
		}
		result.PlanetsUpserted++

		rates := ratesByPlanet[p.ID]
		if err := tx.ReplaceSpawnTable(ctx, p.ID, rates); err != nil {
			return nil, fmt.Errorf(ErrMsgReplaceSpawnFailed, p.ID, err)
		}
		result.SpawnRatesWritten += len(rates)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitSyncFailed, err)
	}

	log.Info(LogMsgSyncCompleted,
		"planets", result.PlanetsUpserted,
		"resources", result.ResourcesUpserted,
		"spawn_rates", result.SpawnRatesWritten)

	return result, nil
}
