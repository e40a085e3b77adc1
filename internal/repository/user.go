package repository

import (
	"context"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	// UpsertUser creates the user by Telegram ID or refreshes username and last login.
	// The stored row, including its ID, is written back into user.
	UpsertUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
}
