package expedition

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/spaceminer/spaceminer-server/internal/concurrency"
	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/event"
	"github.com/spaceminer/spaceminer-server/internal/logger"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// Service defines the expedition lifecycle operations.
// All operations take the internal user id.
type Service interface {
	Start(ctx context.Context, userID string, planetID int) (*domain.StartResult, error)
	Mine(ctx context.Context, userID string, method domain.MiningMethod) (*domain.MineResult, error)
	Explore(ctx context.Context, userID string) (*domain.ExploreResult, error)
	// CheckDanger returns nil, nil when no danger occurs
	CheckDanger(ctx context.Context, userID string) (*domain.DangerEvent, error)
	Return(ctx context.Context, userID string) (*domain.Settlement, error)
	TimeUp(ctx context.Context, userID string) (*domain.Settlement, error)
	GetActive(ctx context.Context, userID string) (*domain.ActiveExpedition, error)
	GetHistory(ctx context.Context, userID string) ([]domain.ExpeditionHistoryEntry, error)
}

// CatalogReader is the read side of the catalog store the engine needs
type CatalogReader interface {
	// GetPlanet returns domain.ErrPlanetNotFound for unknown ids
	GetPlanet(ctx context.Context, id int) (*domain.Planet, error)
	GetSpawnTable(ctx context.Context, planetID int) ([]domain.SpawnEntry, error)
}

// BoostProvider returns the aggregated active upgrade boosts of a user
type BoostProvider interface {
	GetBoosts(ctx context.Context, userID string) (domain.Boosts, error)
}

type service struct {
	repo     repository.Expedition
	catalog  CatalogReader
	boosts   BoostProvider
	bus      event.Bus
	locks    *concurrency.LockManager
	settings Settings

	now   func() time.Time // For time-window checks
	rngMu sync.Mutex
	rng   *rand.Rand // For sampling and danger rolls
}

// NewService creates a new expedition service
func NewService(repo repository.Expedition, catalog CatalogReader, boosts BoostProvider, bus event.Bus, locks *concurrency.LockManager, settings Settings) Service {
	s := &service{
		repo:     repo,
		catalog:  catalog,
		boosts:   boosts,
		bus:      bus,
		locks:    locks,
		settings: settings,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // weak random is fine for games
	}
	if s.locks == nil {
		s.locks = concurrency.NewLockManager()
	}
	return s
}

// withRand runs fn with exclusive access to the random source
func (s *service) withRand(fn func(rng *rand.Rand)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	fn(s.rng)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
