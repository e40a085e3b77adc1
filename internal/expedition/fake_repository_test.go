package expedition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

var errCommitFailed = errors.New("commit failed")

// fakeRepository is an in-memory repository.Expedition. Transactions buffer
// their writes and apply them on Commit.
type fakeRepository struct {
	mu sync.Mutex

	resources   map[int]domain.Resource
	expeditions map[uuid.UUID]*domain.Expedition
	log         map[uuid.UUID][]domain.ExpeditionResource
	inventory   map[string]map[int]int
	currency    map[string]int64
	leaderboard map[string]int64

	failCommit bool
	nextLogID  int64
}

func newFakeRepository(resources ...domain.Resource) *fakeRepository {
	r := &fakeRepository{
		resources:   make(map[int]domain.Resource),
		expeditions: make(map[uuid.UUID]*domain.Expedition),
		log:         make(map[uuid.UUID][]domain.ExpeditionResource),
		inventory:   make(map[string]map[int]int),
		currency:    make(map[string]int64),
		leaderboard: make(map[string]int64),
	}
	for _, res := range resources {
		r.resources[res.ID] = res
	}
	return r
}

func leaderboardKey(userID string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", userID, month, year)
}

func (r *fakeRepository) CreateExpedition(ctx context.Context, exp *domain.Expedition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.expeditions {
		if e.UserID == exp.UserID && e.Status == domain.ExpeditionStatusActive {
			return domain.ErrConflict
		}
	}
	cp := *exp
	r.expeditions[exp.ID] = &cp
	return nil
}

func (r *fakeRepository) GetExpedition(ctx context.Context, id uuid.UUID) (*domain.Expedition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expeditions[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeRepository) GetActiveExpedition(ctx context.Context, userID string) (*domain.Expedition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.expeditions {
		if e.UserID == userID && e.Status == domain.ExpeditionStatusActive {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepository) AddResource(ctx context.Context, entry *domain.ExpeditionResource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextLogID++
	entry.ID = r.nextLogID
	r.log[entry.ExpeditionID] = append(r.log[entry.ExpeditionID], *entry)
	return nil
}

func (r *fakeRepository) joined(entry domain.ExpeditionResource) domain.CollectedResource {
	res := r.resources[entry.ResourceID]
	return domain.CollectedResource{
		ResourceID: entry.ResourceID,
		Name:       res.Name,
		Quantity:   entry.Quantity,
		BaseValue:  res.BaseValue,
		Rarity:     res.Rarity,
		ImageURL:   res.ImageURL,
	}
}

func (r *fakeRepository) GetResourceLog(ctx context.Context, expeditionID uuid.UUID) ([]domain.CollectedResource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.CollectedResource, 0, len(r.log[expeditionID]))
	for _, entry := range r.log[expeditionID] {
		out = append(out, r.joined(entry))
	}
	return out, nil
}

func (r *fakeRepository) ListTerminalExpeditions(ctx context.Context, userID string, limit int) ([]domain.Expedition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Expedition
	for _, e := range r.expeditions {
		if e.UserID == userID && e.Status.IsTerminal() {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) BeginExpeditionTx(ctx context.Context) (repository.ExpeditionTx, error) {
	return &fakeTx{repo: r}, nil
}

func (r *fakeRepository) status(id uuid.UUID) domain.ExpeditionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expeditions[id].Status
}

func (r *fakeRepository) balance(userID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currency[userID]
}

func (r *fakeRepository) held(userID string, resourceID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inventory[userID][resourceID]
}

func (r *fakeRepository) score(userID string, month, year int) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaderboard[leaderboardKey(userID, month, year)]
}

func (r *fakeRepository) entries(id uuid.UUID) []domain.ExpeditionResource {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ExpeditionResource(nil), r.log[id]...)
}

func (r *fakeRepository) logLen(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.log[id])
}

type fakeTx struct {
	repo    *fakeRepository
	pending []func()
	done    bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	if t.repo.failCommit {
		return errCommitFailed
	}
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for _, op := range t.pending {
		op()
	}
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	t.pending = nil
	return nil
}

func (t *fakeTx) GetExpeditionForUpdate(ctx context.Context, id uuid.UUID) (*domain.Expedition, error) {
	return t.repo.GetExpedition(ctx, id)
}

func (t *fakeTx) GetCollectedResources(ctx context.Context, expeditionID uuid.UUID) ([]domain.CollectedResource, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	out := make([]domain.CollectedResource, 0, len(t.repo.log[expeditionID]))
	for _, entry := range t.repo.log[expeditionID] {
		out = append(out, t.repo.joined(entry))
	}
	return out, nil
}

func (t *fakeTx) UpdateExpeditionStatusIfActive(ctx context.Context, id uuid.UUID, status domain.ExpeditionStatus, success bool) (int64, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	e, ok := t.repo.expeditions[id]
	if !ok || e.Status != domain.ExpeditionStatusActive {
		return 0, nil
	}
	t.pending = append(t.pending, func() {
		e.Status = status
		e.Success = success
	})
	return 1, nil
}

func (t *fakeTx) AddInventory(ctx context.Context, userID string, resourceID, quantity int) error {
	t.pending = append(t.pending, func() {
		if t.repo.inventory[userID] == nil {
			t.repo.inventory[userID] = make(map[int]int)
		}
		t.repo.inventory[userID][resourceID] += quantity
	})
	return nil
}

func (t *fakeTx) AddCurrency(ctx context.Context, userID string, amount int64) error {
	t.pending = append(t.pending, func() {
		t.repo.currency[userID] += amount
	})
	return nil
}

func (t *fakeTx) AddLeaderboardScore(ctx context.Context, userID string, month, year int, amount int64) error {
	t.pending = append(t.pending, func() {
		t.repo.leaderboard[leaderboardKey(userID, month, year)] += amount
	})
	return nil
}

type fakeCatalog struct {
	planets map[int]domain.Planet
	tables  map[int][]domain.SpawnEntry
}

func (c *fakeCatalog) GetPlanet(ctx context.Context, id int) (*domain.Planet, error) {
	p, ok := c.planets[id]
	if !ok {
		return nil, domain.ErrPlanetNotFound
	}
	return &p, nil
}

func (c *fakeCatalog) GetSpawnTable(ctx context.Context, planetID int) ([]domain.SpawnEntry, error) {
	return c.tables[planetID], nil
}

type fakeBoosts struct {
	mu     sync.Mutex
	boosts domain.Boosts
}

func (b *fakeBoosts) set(boosts domain.Boosts) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boosts = boosts
}

func (b *fakeBoosts) GetBoosts(ctx context.Context, userID string) (domain.Boosts, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.boosts, nil
}
