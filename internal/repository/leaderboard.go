package repository

import (
	"context"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// Leaderboard defines ranked reads over accumulated settlement value
type Leaderboard interface {
	GetMonthly(ctx context.Context, month, year, limit int) ([]domain.LeaderboardEntry, error)
	GetAllTime(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	// GetUserRank returns nil when the user has no score in the window.
	// month and year of 0 select the all-time window.
	GetUserRank(ctx context.Context, userID string, month, year int) (*int, error)
}
