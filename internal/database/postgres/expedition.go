package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// ExpeditionRepository implements the expedition repository for PostgreSQL
type ExpeditionRepository struct {
	db *pgxpool.Pool
}

// NewExpeditionRepository creates a new ExpeditionRepository
func NewExpeditionRepository(db *pgxpool.Pool) *ExpeditionRepository {
	return &ExpeditionRepository{db: db}
}

var _ repository.Expedition = (*ExpeditionRepository)(nil)

const expeditionColumns = `expedition_id, user_id::text, planet_id, start_time, end_time, status, success`

func scanExpedition(row pgx.Row) (*domain.Expedition, error) {
	var (
		e      domain.Expedition
		status string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.PlanetID, &e.StartTime, &e.EndTime, &status, &e.Success); err != nil {
		return nil, err
	}
	e.Status = domain.ExpeditionStatus(status)
	return &e, nil
}

func collectExpeditions(rows pgx.Rows) ([]domain.Expedition, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Expedition, error) {
		e, err := scanExpedition(row)
		if err != nil {
			return domain.Expedition{}, err
		}
		return *e, nil
	})
}

// CreateExpedition inserts an active expedition. The partial unique index on
// active expeditions turns a second concurrent start into domain.ErrConflict.
func (r *ExpeditionRepository) CreateExpedition(ctx context.Context, expedition *domain.Expedition) error {
	userID, err := parseUserUUID(expedition.UserID)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO expeditions (expedition_id, user_id, planet_id, start_time, end_time, status, success)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)`,
		expedition.ID, userID, expedition.PlanetID, expedition.StartTime, expedition.EndTime, string(expedition.Status))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateExpedition, err)
	}
	return nil
}

func (r *ExpeditionRepository) GetExpedition(ctx context.Context, id uuid.UUID) (*domain.Expedition, error) {
	return getExpedition(ctx, r.db, `SELECT `+expeditionColumns+` FROM expeditions WHERE expedition_id = $1`, id)
}

func getExpedition(ctx context.Context, q querier, sql string, args ...any) (*domain.Expedition, error) {
	e, err := scanExpedition(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetExpedition, err)
	}
	return e, nil
}

func (r *ExpeditionRepository) GetActiveExpedition(ctx context.Context, userID string) (*domain.Expedition, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	e, err := getExpedition(ctx, r.db,
		`SELECT `+expeditionColumns+` FROM expeditions WHERE user_id = $1 AND status = $2`,
		id, string(domain.ExpeditionStatusActive))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetActiveExpedition, err)
	}
	return e, nil
}

// AddResource appends one log entry. A zero CreatedAt takes the database clock.
func (r *ExpeditionRepository) AddResource(ctx context.Context, entry *domain.ExpeditionResource) error {
	var createdAt *time.Time
	if !entry.CreatedAt.IsZero() {
		createdAt = &entry.CreatedAt
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO expedition_resources (expedition_id, resource_id, quantity, created_at)
		VALUES ($1, $2, $3, COALESCE($4, NOW()))
		RETURNING entry_id, created_at`,
		entry.ExpeditionID, entry.ResourceID, entry.Quantity, timeToTimestamptz(createdAt)).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddExpeditionResource, err)
	}
	return nil
}

func (r *ExpeditionRepository) GetResourceLog(ctx context.Context, expeditionID uuid.UUID) ([]domain.CollectedResource, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.resource_id, r.name, er.quantity, r.base_value, r.rarity, r.image_url
		FROM expedition_resources er
		JOIN resources r ON r.resource_id = er.resource_id
		WHERE er.expedition_id = $1
		ORDER BY er.entry_id`, expeditionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryExpeditionLog, err)
	}
	return collectResources(rows)
}

func collectResources(rows pgx.Rows) ([]domain.CollectedResource, error) {
	res, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CollectedResource, error) {
		var c domain.CollectedResource
		err := row.Scan(&c.ResourceID, &c.Name, &c.Quantity, &c.BaseValue, &c.Rarity, &c.ImageURL)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryExpeditionLog, err)
	}
	return res, nil
}

// ListTerminalExpeditions returns the user's settled expeditions, most recent end time first
func (r *ExpeditionRepository) ListTerminalExpeditions(ctx context.Context, userID string, limit int) ([]domain.Expedition, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+expeditionColumns+`
		FROM expeditions
		WHERE user_id = $1 AND status <> $2
		ORDER BY end_time DESC
		LIMIT $3`, id, string(domain.ExpeditionStatusActive), limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryExpeditions, err)
	}
	exps, err := collectExpeditions(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryExpeditions, err)
	}
	return exps, nil
}

// BeginExpeditionTx starts a settlement transaction
func (r *ExpeditionRepository) BeginExpeditionTx(ctx context.Context) (repository.ExpeditionTx, error) {
	base, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &expeditionTx{txBase: base}, nil
}

type expeditionTx struct {
	txBase
}

func (t *expeditionTx) GetExpeditionForUpdate(ctx context.Context, id uuid.UUID) (*domain.Expedition, error) {
	return getExpedition(ctx, t.tx,
		`SELECT `+expeditionColumns+` FROM expeditions WHERE expedition_id = $1 FOR UPDATE`, id)
}

func (t *expeditionTx) GetCollectedResources(ctx context.Context, expeditionID uuid.UUID) ([]domain.CollectedResource, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT r.resource_id, r.name, er.quantity, r.base_value, r.rarity, r.image_url
		FROM expedition_resources er
		JOIN resources r ON r.resource_id = er.resource_id
		WHERE er.expedition_id = $1
		ORDER BY er.entry_id`, expeditionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryExpeditionLog, err)
	}
	return collectResources(rows)
}

func (t *expeditionTx) UpdateExpeditionStatusIfActive(ctx context.Context, id uuid.UUID, status domain.ExpeditionStatus, success bool) (int64, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE expeditions SET status = $2, success = $3
		WHERE expedition_id = $1 AND status = $4`,
		id, string(status), success, string(domain.ExpeditionStatusActive))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateExpeditionStatus, err)
	}
	return tag.RowsAffected(), nil
}

func (t *expeditionTx) AddInventory(ctx context.Context, userID string, resourceID, quantity int) error {
	id, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO inventory (user_id, resource_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, resource_id) DO UPDATE
		SET quantity = inventory.quantity + EXCLUDED.quantity`,
		id, resourceID, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddInventory, err)
	}
	return nil
}

func (t *expeditionTx) AddCurrency(ctx context.Context, userID string, amount int64) error {
	id, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `UPDATE users SET currency = currency + $2 WHERE user_id = $1`, id, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddCurrency, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddCurrency, domain.ErrUserNotFound)
	}
	return nil
}

func (t *expeditionTx) AddLeaderboardScore(ctx context.Context, userID string, month, year int, amount int64) error {
	id, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO leaderboard (user_id, month, year, score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, month, year) DO UPDATE
		SET score = leaderboard.score + EXCLUDED.score`,
		id, month, year, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertLeaderboard, err)
	}
	return nil
}
