package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// UpgradeRepository implements the upgrade ledger for PostgreSQL
type UpgradeRepository struct {
	db *pgxpool.Pool
}

// NewUpgradeRepository creates a new UpgradeRepository
func NewUpgradeRepository(db *pgxpool.Pool) *UpgradeRepository {
	return &UpgradeRepository{db: db}
}

var _ repository.Upgrade = (*UpgradeRepository)(nil)

func (r *UpgradeRepository) ListUserUpgrades(ctx context.Context, userID string) ([]domain.UserUpgrade, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT upgrade_id, user_id::text, upgrade_type, boost_value, active, expires_at, created_at
		FROM user_upgrades
		WHERE user_id = $1
		ORDER BY created_at`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUpgrades, err)
	}
	upgrades, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserUpgrade, error) {
		var (
			u         domain.UserUpgrade
			upType    string
			expiresAt pgtype.Timestamptz
		)
		err := row.Scan(&u.ID, &u.UserID, &upType, &u.BoostValue, &u.Active, &expiresAt, &u.CreatedAt)
		u.Type = domain.UpgradeType(upType)
		u.ExpiresAt = ptrTime(expiresAt)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryUpgrades, err)
	}
	return upgrades, nil
}

func (r *UpgradeRepository) InsertUpgrade(ctx context.Context, upgrade *domain.UserUpgrade) error {
	id, err := parseUserUUID(upgrade.UserID)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO user_upgrades (user_id, upgrade_type, boost_value, active, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING upgrade_id, created_at`,
		id, string(upgrade.Type), upgrade.BoostValue, upgrade.Active, timeToTimestamptz(upgrade.ExpiresAt),
	).Scan(&upgrade.ID, &upgrade.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertUpgrade, err)
	}
	return nil
}
