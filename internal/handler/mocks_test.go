package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/leaderboard"
	"github.com/spaceminer/spaceminer-server/internal/upgrade"
	"github.com/spaceminer/spaceminer-server/internal/user"
)

// MockExpeditionService mocks expedition.Service
type MockExpeditionService struct {
	mock.Mock
}

func (m *MockExpeditionService) Start(ctx context.Context, userID string, planetID int) (*domain.StartResult, error) {
	args := m.Called(ctx, userID, planetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StartResult), args.Error(1)
}

func (m *MockExpeditionService) Mine(ctx context.Context, userID string, method domain.MiningMethod) (*domain.MineResult, error) {
	args := m.Called(ctx, userID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MineResult), args.Error(1)
}

func (m *MockExpeditionService) Explore(ctx context.Context, userID string) (*domain.ExploreResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExploreResult), args.Error(1)
}

func (m *MockExpeditionService) CheckDanger(ctx context.Context, userID string) (*domain.DangerEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DangerEvent), args.Error(1)
}

func (m *MockExpeditionService) Return(ctx context.Context, userID string) (*domain.Settlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockExpeditionService) TimeUp(ctx context.Context, userID string) (*domain.Settlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockExpeditionService) GetActive(ctx context.Context, userID string) (*domain.ActiveExpedition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActiveExpedition), args.Error(1)
}

func (m *MockExpeditionService) GetHistory(ctx context.Context, userID string) ([]domain.ExpeditionHistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpeditionHistoryEntry), args.Error(1)
}

// MockUserService mocks user.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, telegramID int64, username string) (*domain.User, error) {
	args := m.Called(ctx, telegramID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ResolveUserID(ctx context.Context, telegramID int64) (string, error) {
	args := m.Called(ctx, telegramID)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, telegramID int64) (*domain.Profile, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserService) CacheStats() user.CacheStats {
	args := m.Called()
	return args.Get(0).(user.CacheStats)
}

// MockCatalogService mocks catalog.Service
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListPlanets(ctx context.Context) ([]domain.Planet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Planet), args.Error(1)
}

func (m *MockCatalogService) GetPlanet(ctx context.Context, id int) (*domain.Planet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Planet), args.Error(1)
}

func (m *MockCatalogService) GetSpawnTable(ctx context.Context, planetID int) ([]domain.SpawnEntry, error) {
	args := m.Called(ctx, planetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpawnEntry), args.Error(1)
}

func (m *MockCatalogService) GetPlanetDetails(ctx context.Context, id int) (*domain.PlanetDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanetDetails), args.Error(1)
}

func (m *MockCatalogService) ListResources(ctx context.Context) ([]domain.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockCatalogService) FindPlanets(ctx context.Context, query string) ([]domain.Planet, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Planet), args.Error(1)
}

func (m *MockCatalogService) Invalidate() {
	m.Called()
}

// MockLeaderboardService mocks leaderboard.Service
type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Get(ctx context.Context, q leaderboard.Query) (*domain.Leaderboard, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Leaderboard), args.Error(1)
}

// MockUpgradeService mocks upgrade.Service
type MockUpgradeService struct {
	mock.Mock
}

func (m *MockUpgradeService) GetBoosts(ctx context.Context, userID string) (domain.Boosts, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Boosts), args.Error(1)
}

func (m *MockUpgradeService) ListActive(ctx context.Context, userID string) ([]domain.UserUpgrade, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserUpgrade), args.Error(1)
}

func (m *MockUpgradeService) Grant(ctx context.Context, req upgrade.GrantRequest) (*domain.UserUpgrade, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserUpgrade), args.Error(1)
}
