package repository

import (
	"context"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// Upgrade defines access to the user upgrade ledger
type Upgrade interface {
	ListUserUpgrades(ctx context.Context, userID string) ([]domain.UserUpgrade, error)
	InsertUpgrade(ctx context.Context, upgrade *domain.UserUpgrade) error
}
