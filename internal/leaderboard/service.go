package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/logger"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// DefaultLimit is the number of ranked rows returned
const DefaultLimit = 100

// Query selects a leaderboard window. Zero Month/Year on a monthly query
// select the current UTC month.
type Query struct {
	Period domain.LeaderboardPeriod
	Month  int
	Year   int
	// UserID, when set, fills in the caller's rank
	UserID string
}

// Service provides leaderboard reads
type Service interface {
	Get(ctx context.Context, q Query) (*domain.Leaderboard, error)
}

type service struct {
	repo repository.Leaderboard
	now  func() time.Time
}

// NewService creates a new leaderboard service
func NewService(repo repository.Leaderboard) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Get(ctx context.Context, q Query) (*domain.Leaderboard, error) {
	log := logger.FromContext(ctx)

	if q.Period == "" {
		q.Period = domain.LeaderboardMonthly
	}

	result := &domain.Leaderboard{Period: q.Period}
	var (
		entries []domain.LeaderboardEntry
		err     error
	)

	switch q.Period {
	case domain.LeaderboardMonthly:
		if q.Month == 0 || q.Year == 0 {
			now := s.now().UTC()
			q.Month, q.Year = int(now.Month()), now.Year()
		}
		if q.Month < 1 || q.Month > 12 {
			return nil, fmt.Errorf("%w: month must be within 1..12", domain.ErrInvalidInput)
		}
		result.Month, result.Year = q.Month, q.Year
		entries, err = s.repo.GetMonthly(ctx, q.Month, q.Year, DefaultLimit)
	case domain.LeaderboardAllTime:
		q.Month, q.Year = 0, 0
		entries, err = s.repo.GetAllTime(ctx, DefaultLimit)
	default:
		return nil, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidInput, q.Period)
	}
	if err != nil {
		log.Error("Failed to get leaderboard", "period", q.Period, "error", err)
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	result.Entries = entries

	if q.UserID != "" {
		rank, err := s.repo.GetUserRank(ctx, q.UserID, q.Month, q.Year)
		if err != nil {
			return nil, fmt.Errorf("failed to get user rank: %w", err)
		}
		result.UserRank = rank
	}

	return result, nil
}
