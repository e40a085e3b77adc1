package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// LeaderboardRepository implements ranked leaderboard reads for PostgreSQL
type LeaderboardRepository struct {
	db *pgxpool.Pool
}

// NewLeaderboardRepository creates a new LeaderboardRepository
func NewLeaderboardRepository(db *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

var _ repository.Leaderboard = (*LeaderboardRepository)(nil)

func collectLeaderboard(rows pgx.Rows) ([]domain.LeaderboardEntry, error) {
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LeaderboardEntry, error) {
		var e domain.LeaderboardEntry
		err := row.Scan(&e.Rank, &e.UserID, &e.Username, &e.TelegramID, &e.Score)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLeaderboard, err)
	}
	return entries, nil
}

func (r *LeaderboardRepository) GetMonthly(ctx context.Context, month, year, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT RANK() OVER (ORDER BY l.score DESC)::int, u.user_id::text, u.username, u.telegram_id, l.score
		FROM leaderboard l
		JOIN users u ON u.user_id = l.user_id
		WHERE l.month = $1 AND l.year = $2
		ORDER BY l.score DESC, u.username
		LIMIT $3`, month, year, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLeaderboard, err)
	}
	return collectLeaderboard(rows)
}

func (r *LeaderboardRepository) GetAllTime(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT RANK() OVER (ORDER BY SUM(l.score) DESC)::int, u.user_id::text, u.username, u.telegram_id, SUM(l.score)::bigint
		FROM leaderboard l
		JOIN users u ON u.user_id = l.user_id
		GROUP BY u.user_id, u.username, u.telegram_id
		ORDER BY SUM(l.score) DESC, u.username
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLeaderboard, err)
	}
	return collectLeaderboard(rows)
}

func (r *LeaderboardRepository) GetUserRank(ctx context.Context, userID string, month, year int) (*int, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	var rank int
	if month == 0 && year == 0 {
		err = r.db.QueryRow(ctx, `
			SELECT rank FROM (
				SELECT user_id, RANK() OVER (ORDER BY SUM(score) DESC)::int AS rank
				FROM leaderboard GROUP BY user_id
			) ranked WHERE user_id = $1`, id).Scan(&rank)
	} else {
		err = r.db.QueryRow(ctx, `
			SELECT rank FROM (
				SELECT user_id, RANK() OVER (ORDER BY score DESC)::int AS rank
				FROM leaderboard WHERE month = $2 AND year = $3
			) ranked WHERE user_id = $1`, id, month, year).Scan(&rank)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUserRank, err)
	}
	return &rank, nil
}
