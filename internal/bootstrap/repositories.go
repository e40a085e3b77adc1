package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spaceminer/spaceminer-server/internal/catalog"
	"github.com/spaceminer/spaceminer-server/internal/concurrency"
	"github.com/spaceminer/spaceminer-server/internal/config"
	"github.com/spaceminer/spaceminer-server/internal/database/postgres"
	"github.com/spaceminer/spaceminer-server/internal/event"
	"github.com/spaceminer/spaceminer-server/internal/expedition"
	"github.com/spaceminer/spaceminer-server/internal/leaderboard"
	"github.com/spaceminer/spaceminer-server/internal/repository"
	"github.com/spaceminer/spaceminer-server/internal/server"
	"github.com/spaceminer/spaceminer-server/internal/upgrade"
	"github.com/spaceminer/spaceminer-server/internal/user"
)

// Repositories holds all repository implementations used by the application
type Repositories struct {
	Expedition  repository.Expedition
	Catalog     repository.Catalog
	Upgrade     repository.Upgrade
	User        repository.User
	Leaderboard repository.Leaderboard
}

// InitializeRepositories creates the Postgres repositories
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Expedition:  postgres.NewExpeditionRepository(dbPool),
		Catalog:     postgres.NewCatalogRepository(dbPool),
		Upgrade:     postgres.NewUpgradeRepository(dbPool),
		User:        postgres.NewUserRepository(dbPool),
		Leaderboard: postgres.NewLeaderboardRepository(dbPool),
	}
}

// InitializeServices wires the application services on top of the repositories.
// The catalog service doubles as the engine's catalog reader and the upgrade
// service as its boost provider.
func InitializeServices(cfg *config.Config, repos *Repositories, bus event.Bus, settings expedition.Settings) server.Services {
	catalogSvc := catalog.NewService(repos.Catalog, cfg.CatalogCacheTTL)
	upgradeSvc := upgrade.NewService(repos.Upgrade, bus)

	return server.Services{
		Expedition:  expedition.NewService(repos.Expedition, catalogSvc, upgradeSvc, bus, concurrency.NewLockManager(), settings),
		Catalog:     catalogSvc,
		User:        user.NewService(repos.User, user.DefaultCacheConfig()),
		Leaderboard: leaderboard.NewService(repos.Leaderboard),
		Upgrade:     upgradeSvc,
	}
}
