package upgrade

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/event"
	"github.com/spaceminer/spaceminer-server/internal/logger"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// GrantRequest describes a new ledger entry
type GrantRequest struct {
	UserID     string
	Type       domain.UpgradeType
	BoostValue float64
	// Duration of zero means the upgrade never expires
	Duration time.Duration
}

// Service reads aggregated boosts from the upgrade ledger and grants new entries
type Service interface {
	GetBoosts(ctx context.Context, userID string) (domain.Boosts, error)
	ListActive(ctx context.Context, userID string) ([]domain.UserUpgrade, error)
	Grant(ctx context.Context, req GrantRequest) (*domain.UserUpgrade, error)
}

type service struct {
	repo repository.Upgrade
	bus  event.Bus
	now  func() time.Time
}

// NewService creates a new upgrade service
func NewService(repo repository.Upgrade, bus event.Bus) Service {
	return &service{
		repo: repo,
		bus:  bus,
		now:  time.Now,
	}
}

// Aggregate folds effective ledger entries into per-type boosts.
// When several entries of one type are effective the largest wins.
func Aggregate(upgrades []domain.UserUpgrade, now time.Time) domain.Boosts {
	var b domain.Boosts
	for i := range upgrades {
		u := &upgrades[i]
		if !u.Effective(now) {
			continue
		}
		switch u.Type {
		case domain.UpgradeSuitAutonomy:
			b.SuitAutonomy = math.Max(b.SuitAutonomy, u.BoostValue)
		case domain.UpgradeDroneCollection:
			b.DroneCollection = math.Max(b.DroneCollection, u.BoostValue)
		case domain.UpgradeInsuranceRecovery:
			b.InsuranceRecovery = math.Max(b.InsuranceRecovery, u.BoostValue)
		case domain.UpgradeSpeed:
			b.Speed = math.Max(b.Speed, u.BoostValue)
		case domain.UpgradeCapacity:
			b.Capacity = math.Max(b.Capacity, u.BoostValue)
		}
	}
	return b
}

func (s *service) GetBoosts(ctx context.Context, userID string) (domain.Boosts, error) {
	upgrades, err := s.repo.ListUserUpgrades(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list upgrades", "userID", userID, "error", err)
		return domain.Boosts{}, fmt.Errorf("failed to list upgrades: %w", err)
	}
	return Aggregate(upgrades, s.now()), nil
}

func (s *service) ListActive(ctx context.Context, userID string) ([]domain.UserUpgrade, error) {
	upgrades, err := s.repo.ListUserUpgrades(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list upgrades: %w", err)
	}

	now := s.now()
	active := make([]domain.UserUpgrade, 0, len(upgrades))
	for _, u := range upgrades {
		if u.Effective(now) {
			active = append(active, u)
		}
	}
	return active, nil
}

func (s *service) Grant(ctx context.Context, req GrantRequest) (*domain.UserUpgrade, error) {
	log := logger.FromContext(ctx)

	if !slices.Contains(domain.ValidUpgradeTypes, req.Type) {
		return nil, fmt.Errorf("%w: unknown upgrade type %q", domain.ErrInvalidInput, req.Type)
	}
	if req.BoostValue <= 0 || math.IsNaN(req.BoostValue) {
		return nil, fmt.Errorf("%w: boost value must be positive", domain.ErrInvalidInput)
	}
	if req.Type == domain.UpgradeInsuranceRecovery && req.BoostValue > 1 {
		return nil, fmt.Errorf("%w: insurance recovery must be within (0,1]", domain.ErrInvalidInput)
	}
	if req.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", domain.ErrInvalidInput)
	}

	u := &domain.UserUpgrade{
		UserID:     req.UserID,
		Type:       req.Type,
		BoostValue: req.BoostValue,
		Active:     true,
	}
	if req.Duration > 0 {
		expires := s.now().Add(req.Duration)
		u.ExpiresAt = &expires
	}

	if err := s.repo.InsertUpgrade(ctx, u); err != nil {
		log.Error("Failed to insert upgrade", "userID", req.UserID, "error", err)
		return nil, fmt.Errorf("failed to insert upgrade: %w", err)
	}

	log.Info("Upgrade granted", "userID", u.UserID, "type", u.Type, "boost", u.BoostValue, "expiresAt", u.ExpiresAt)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewUpgradeGrantedEvent(*u)); err != nil {
			log.Warn("Failed to publish upgrade event", "error", err)
		}
	}
	return u, nil
}
