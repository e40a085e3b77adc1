package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.User = (*UserRepository)(nil)

const userColumns = `user_id::text, telegram_id, username, currency, created_at, last_login`

// UpsertUser inserts the user keyed by Telegram ID, refreshing username and last login on conflict
func (r *UserRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (telegram_id, username, last_login)
		VALUES ($1, $2, NOW())
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username, last_login = NOW()
		RETURNING `+userColumns,
		user.TelegramID, user.Username)

	stored, err := scanUser(row)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertUser, err)
	}
	*user = *stored
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	return getUser(ctx, r.db, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
}

func (r *UserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return getUser(ctx, r.db, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
}

func getUser(ctx context.Context, q querier, sql string, arg any) (*domain.User, error) {
	user, err := scanUser(q.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u         domain.User
		lastLogin pgtype.Timestamptz
	)
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.Currency, &u.CreatedAt, &lastLogin); err != nil {
		return nil, err
	}
	u.LastLogin = ptrTime(lastLogin)
	return &u, nil
}

// GetInventory returns the settled inventory joined with resource data, rarest first
func (r *UserRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT r.resource_id, r.name, r.rarity, r.base_value, r.image_url, i.quantity
		FROM inventory i
		JOIN resources r ON r.resource_id = i.resource_id
		WHERE i.user_id = $1 AND i.quantity > 0
		ORDER BY r.rarity DESC, r.name`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InventoryEntry, error) {
		var e domain.InventoryEntry
		err := row.Scan(&e.ResourceID, &e.Name, &e.Rarity, &e.BaseValue, &e.ImageURL, &e.Quantity)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	return entries, nil
}
