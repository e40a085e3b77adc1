package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spaceminer/spaceminer-server/internal/catalog"
	"github.com/spaceminer/spaceminer-server/internal/config"
	"github.com/spaceminer/spaceminer-server/internal/expedition"
	"github.com/spaceminer/spaceminer-server/internal/repository"
	"github.com/spaceminer/spaceminer-server/internal/validation"
)

// SyncCatalog schema-checks, loads, validates and upserts the static catalog (planets, resources, spawn rates).
// The catalog is read-only at runtime, so this is the only writer.
func SyncCatalog(ctx context.Context, path string, repo repository.Catalog) error {
	slog.Info(LogMsgSyncingCatalog, "path", path)

	if err := validation.NewSchemaValidator().ValidateFile(path, config.ConfigPathCatalogSchema); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	loader := catalog.NewLoader()

	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	if err := loader.Validate(cfg); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	result, err := loader.SyncToDatabase(ctx, cfg, repo)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	slog.Info(LogMsgCatalogSynced,
		"version", cfg.Version,
		"planets", result.PlanetsUpserted,
		"resources", result.ResourcesUpserted,
		"spawn_rates", result.SpawnRatesWritten)
	return nil
}

// LoadExpeditionSettings reads engine tuning, falling back to defaults when the file is absent
func LoadExpeditionSettings(path string) (expedition.Settings, error) {
	settings, err := expedition.LoadSettings(path)
	if err != nil {
		return expedition.Settings{}, fmt.Errorf("%s: %w", ErrMsgFailedLoadSettings, err)
	}
	slog.Info(LogMsgSettingsLoaded,
		"path", path,
		"danger_chance_per_level", settings.DangerChancePerLevel,
		"lazy_close_on_start", settings.LazyCloseOnStart,
		"history_limit", settings.HistoryLimit)
	return settings, nil
}
