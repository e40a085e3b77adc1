package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// Expedition defines the interface for expedition data access
type Expedition interface {
	// CreateExpedition inserts an active expedition. It returns domain.ErrConflict
	// when the user already has one.
	CreateExpedition(ctx context.Context, expedition *domain.Expedition) error
	GetExpedition(ctx context.Context, id uuid.UUID) (*domain.Expedition, error)
	// GetActiveExpedition returns nil, nil when the user has no active expedition
	GetActiveExpedition(ctx context.Context, userID string) (*domain.Expedition, error)
	AddResource(ctx context.Context, entry *domain.ExpeditionResource) error
	// GetResourceLog returns the raw entries of an expedition joined with catalog data, oldest first
	GetResourceLog(ctx context.Context, expeditionID uuid.UUID) ([]domain.CollectedResource, error)
	ListTerminalExpeditions(ctx context.Context, userID string, limit int) ([]domain.Expedition, error)

	BeginExpeditionTx(ctx context.Context) (ExpeditionTx, error)
}

// ExpeditionTx extends Tx with the writes a settlement performs atomically
type ExpeditionTx interface {
	Tx // Commit, Rollback

	// GetExpeditionForUpdate locks the expedition row for the rest of the transaction
	GetExpeditionForUpdate(ctx context.Context, id uuid.UUID) (*domain.Expedition, error)
	// GetCollectedResources returns the raw log entries in collection order.
	// Insurance is floored per entry, so they must not be pre-aggregated.
	GetCollectedResources(ctx context.Context, expeditionID uuid.UUID) ([]domain.CollectedResource, error)
	// UpdateExpeditionStatusIfActive performs the active -> terminal compare-and-swap.
	// The returned count is 0 when the expedition was no longer active.
	UpdateExpeditionStatusIfActive(ctx context.Context, id uuid.UUID, status domain.ExpeditionStatus, success bool) (int64, error)
	AddInventory(ctx context.Context, userID string, resourceID, quantity int) error
	AddCurrency(ctx context.Context, userID string, amount int64) error
	AddLeaderboardScore(ctx context.Context, userID string, month, year int, amount int64) error
}
