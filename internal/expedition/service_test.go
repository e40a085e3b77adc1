package expedition

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaceminer/spaceminer-server/internal/concurrency"
	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/event"
)

const (
	testUser      = "8d6f3c1e-2b4a-4f6e-9c1d-7a5b3e2f1a00"
	planetMars    = 1
	planetBarren  = 2
	planetHazard  = 3
	resourceIron  = 10
	resourceGold  = 11
	ironBaseValue = 10
	goldBaseValue = 50
)

var (
	iron = domain.Resource{ID: resourceIron, Name: "Iron", Rarity: 1, BaseValue: ironBaseValue}
	gold = domain.Resource{ID: resourceGold, Name: "Gold", Rarity: 3, BaseValue: goldBaseValue}

	baseTime = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	svc    *service
	repo   *fakeRepository
	boosts *fakeBoosts
	clock  *testClock
	events *eventRecorder
}

type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) handle(ctx context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *eventRecorder) count(t event.Type) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalog := &fakeCatalog{
		planets: map[int]domain.Planet{
			planetMars:   {ID: planetMars, Name: "Mars", BaseTime: 600, ResourceMultiplier: 1.0, DangerLevel: 0},
			planetBarren: {ID: planetBarren, Name: "Barren Rock", BaseTime: 300, ResourceMultiplier: 1.0, DangerLevel: 0},
			planetHazard: {ID: planetHazard, Name: "Inferno", BaseTime: 300, ResourceMultiplier: 2.0, DangerLevel: 20},
		},
		tables: map[int][]domain.SpawnEntry{
			planetMars: {
				{Resource: iron, SpawnRate: 0.9},
				{Resource: gold, SpawnRate: 0.1},
			},
			planetHazard: {
				{Resource: iron, SpawnRate: 1},
			},
		},
	}

	repo := newFakeRepository(iron, gold)
	boosts := &fakeBoosts{}
	clock := &testClock{now: baseTime}
	recorder := &eventRecorder{}

	bus := event.NewMemoryBus()
	for _, typ := range event.AllTypes {
		bus.Subscribe(typ, recorder.handle)
	}

	svc := NewService(repo, catalog, boosts, bus, concurrency.NewLockManager(), DefaultSettings()).(*service)
	svc.now = clock.Now
	svc.rng = rand.New(rand.NewSource(1))

	return &testEnv{svc: svc, repo: repo, boosts: boosts, clock: clock, events: recorder}
}

// seed appends raw resource entries to an expedition's log
func (e *testEnv) seed(t *testing.T, exp domain.Expedition, resourceID, qty int) {
	t.Helper()
	require.NoError(t, e.repo.AddResource(context.Background(), &domain.ExpeditionResource{
		ExpeditionID: exp.ID, ResourceID: resourceID, Quantity: qty,
	}))
}

func (e *testEnv) start(t *testing.T, planetID int) domain.Expedition {
	t.Helper()
	res, err := e.svc.Start(context.Background(), testUser, planetID)
	require.NoError(t, err)
	return res.Expedition
}

// ---- start ----

func TestStart_CreatesActiveExpedition(t *testing.T) {
	env := newTestEnv(t)
	env.boosts.set(domain.Boosts{SuitAutonomy: 0.5})

	res, err := env.svc.Start(context.Background(), testUser, planetMars)
	require.NoError(t, err)

	assert.Equal(t, MsgExpeditionStarted, res.Message)
	assert.InDelta(t, 900.0, res.CountdownSeconds, 1e-9)
	assert.Equal(t, baseTime, res.Expedition.StartTime)
	assert.Equal(t, baseTime.Add(900*time.Second), res.Expedition.EndTime)
	assert.Equal(t, domain.ExpeditionStatusActive, res.Expedition.Status)
	assert.False(t, res.Expedition.Success)
	assert.Nil(t, res.Closed)
	assert.Equal(t, 1, env.events.count(event.ExpeditionStarted))
}

func TestStart_ConflictWhenActive(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, planetMars)

	_, err := env.svc.Start(context.Background(), testUser, planetBarren)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStart_PlanetNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Start(context.Background(), testUser, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrPlanetNotFound)
}

func TestStart_LazilyClosesExpiredExpedition(t *testing.T) {
	env := newTestEnv(t)
	env.boosts.set(domain.Boosts{InsuranceRecovery: 0.5})
	old := env.start(t, planetMars)
	env.seed(t, old, resourceIron, 4)

	env.clock.Advance(601 * time.Second)

	res, err := env.svc.Start(context.Background(), testUser, planetBarren)
	require.NoError(t, err)

	require.NotNil(t, res.Closed)
	assert.Equal(t, old.ID, res.Closed.ExpeditionID)
	assert.Equal(t, domain.ExpeditionStatusTimedOut, res.Closed.Status)
	assert.Equal(t, domain.ExpeditionStatusTimedOut, env.repo.status(old.ID))
	assert.Equal(t, 2, env.repo.held(testUser, resourceIron))

	assert.NotEqual(t, old.ID, res.Expedition.ID)
	assert.Equal(t, domain.ExpeditionStatusActive, env.repo.status(res.Expedition.ID))
}

func TestStart_LazyCloseDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.svc.settings.LazyCloseOnStart = false
	env.start(t, planetMars)

	env.clock.Advance(time.Hour)

	_, err := env.svc.Start(context.Background(), testUser, planetMars)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStart_ConcurrentSingleActive(t *testing.T) {
	env := newTestEnv(t)

	const callers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, conflicts := 0, 0

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.Start(context.Background(), testUser, planetMars)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, conflicts)
}

// ---- mine / explore / danger ----

func TestMine_NoActiveExpedition(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Mine(context.Background(), testUser, domain.MiningMethodManual)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMine_InvalidMethod(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, planetMars)

	_, err := env.svc.Mine(context.Background(), testUser, domain.MiningMethod("laser"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMine_RecordsSampledResource(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetMars)

	res, err := env.svc.Mine(context.Background(), testUser, domain.MiningMethodManual)
	require.NoError(t, err)
	require.NotNil(t, res.Resource)
	assert.Nil(t, res.Danger)
	assert.Contains(t, res.Message, "You mined")
	assert.Equal(t, 1, env.repo.logLen(exp.ID))
	assert.Equal(t, 1, env.events.count(event.ResourceFound))
}

func TestMine_StampsEntryWithClock(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetMars)
	env.clock.Advance(42 * time.Second)

	_, err := env.svc.Mine(context.Background(), testUser, domain.MiningMethodAuto)
	require.NoError(t, err)
	_, err = env.svc.Explore(context.Background(), testUser)
	require.NoError(t, err)

	entries := env.repo.entries(exp.ID)
	require.GreaterOrEqual(t, len(entries), 3)
	for _, e := range entries {
		assert.Equal(t, baseTime.Add(42*time.Second), e.CreatedAt)
	}
}

func TestMine_EmptySpawnTable(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetBarren)

	res, err := env.svc.Mine(context.Background(), testUser, domain.MiningMethodAuto)
	require.NoError(t, err)
	assert.Nil(t, res.Resource)
	assert.Equal(t, MsgNothingMined, res.Message)
	assert.Equal(t, 0, env.repo.logLen(exp.ID))
}

func TestMine_WindowBoundary(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, planetMars)

	// The end instant itself is still inside the window
	env.clock.Advance(600 * time.Second)
	_, err := env.svc.Mine(context.Background(), testUser, domain.MiningMethodManual)
	require.NoError(t, err)

	env.clock.Advance(time.Millisecond)
	_, err = env.svc.Mine(context.Background(), testUser, domain.MiningMethodManual)
	assert.ErrorIs(t, err, domain.ErrExpired)
}

func TestMine_DangerAlongsideResource(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, planetHazard)

	res, err := env.svc.Mine(context.Background(), testUser, domain.MiningMethodManual)
	require.NoError(t, err)
	require.NotNil(t, res.Resource)
	require.NotNil(t, res.Danger)
	assert.Equal(t, 1, env.events.count(event.DangerTriggered))
}

func TestExplore_DrawsTwoToFour(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetMars)

	total := 0
	for i := 0; i < 50; i++ {
		res, err := env.svc.Explore(context.Background(), testUser)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(res.Resources), 2)
		assert.LessOrEqual(t, len(res.Resources), 4)
		total += len(res.Resources)
	}

	// Every draw is logged separately
	assert.Equal(t, total, env.repo.logLen(exp.ID))
}

func TestExplore_EmptySpawnTable(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, planetBarren)

	res, err := env.svc.Explore(context.Background(), testUser)
	require.NoError(t, err)
	assert.NotNil(t, res.Resources)
	assert.Empty(t, res.Resources)
	assert.Equal(t, "You explored the area and found 0 resources!", res.Message)
}

func TestExplore_Expired(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, planetMars)
	env.clock.Advance(10 * time.Minute)
	env.clock.Advance(time.Millisecond)

	_, err := env.svc.Explore(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrExpired)
}

func TestCheckDanger(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, planetMars)

	for i := 0; i < 100; i++ {
		d, err := env.svc.CheckDanger(context.Background(), testUser)
		require.NoError(t, err)
		assert.Nil(t, d)
	}
}

func TestCheckDanger_CertainOnHazardPlanet(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetHazard)

	d, err := env.svc.CheckDanger(context.Background(), testUser)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 0, env.repo.logLen(exp.ID))
}

func TestCheckDanger_Preconditions(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CheckDanger(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	env.start(t, planetMars)
	env.clock.Advance(601 * time.Second)
	_, err = env.svc.CheckDanger(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrExpired)
}

// ---- return / time-up ----

func TestReturn_SuccessCreditsEverything(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetMars)
	env.seed(t, exp, resourceIron, 2)
	env.seed(t, exp, resourceGold, 1)
	env.seed(t, exp, resourceIron, 1)

	env.clock.Advance(5 * time.Minute)
	s, err := env.svc.Return(context.Background(), testUser)
	require.NoError(t, err)

	assert.True(t, s.Success)
	assert.Nil(t, s.Recovery)
	assert.Equal(t, domain.ExpeditionStatusCompleted, s.Status)
	assert.Len(t, s.Resources, 2)
	assert.Equal(t, int64(3*ironBaseValue+goldBaseValue), s.TotalValue)
	assert.Equal(t, "Expedition completed successfully! You collected resources worth 80 currency.", s.Message)

	assert.Equal(t, domain.ExpeditionStatusCompleted, env.repo.status(exp.ID))
	assert.Equal(t, 3, env.repo.held(testUser, resourceIron))
	assert.Equal(t, 1, env.repo.held(testUser, resourceGold))
	assert.Equal(t, int64(80), env.repo.balance(testUser))
	assert.Equal(t, int64(80), env.repo.score(testUser, 3, 2026))
	assert.Equal(t, 1, env.events.count(event.ExpeditionSettled))
}

func TestReturn_LateAppliesInsurance(t *testing.T) {
	env := newTestEnv(t)
	env.boosts.set(domain.Boosts{InsuranceRecovery: 0.5})
	exp := env.start(t, planetMars)
	env.seed(t, exp, resourceIron, 3)

	env.clock.Advance(600*time.Second + time.Millisecond)
	s, err := env.svc.Return(context.Background(), testUser)
	require.NoError(t, err)

	assert.False(t, s.Success)
	require.NotNil(t, s.Recovery)
	assert.InDelta(t, 0.5, *s.Recovery, 1e-9)
	require.Len(t, s.Resources, 1)
	assert.Equal(t, 1, s.Resources[0].Quantity)
	require.NotNil(t, s.Resources[0].OriginalQuantity)
	assert.Equal(t, 3, *s.Resources[0].OriginalQuantity)
	assert.Equal(t, int64(ironBaseValue), s.TotalValue)
	assert.Equal(t, "Expedition failed! You recovered 50% of your resources worth 10 currency.", s.Message)

	// Late return still lands in completed
	assert.Equal(t, domain.ExpeditionStatusCompleted, env.repo.status(exp.ID))
	assert.Equal(t, 1, env.repo.held(testUser, resourceIron))
}

func TestReturn_LateWithoutInsuranceLosesAll(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetMars)
	env.seed(t, exp, resourceIron, 5)

	env.clock.Advance(time.Hour)
	s, err := env.svc.Return(context.Background(), testUser)
	require.NoError(t, err)

	assert.False(t, s.Success)
	require.NotNil(t, s.Recovery)
	assert.Zero(t, *s.Recovery)
	assert.Empty(t, s.Resources)
	assert.Zero(t, s.TotalValue)
	assert.Equal(t, MsgReturnLost, s.Message)
	assert.Zero(t, env.repo.balance(testUser))
	assert.Zero(t, env.repo.held(testUser, resourceIron))
}

func TestReturn_AtEndInstantSucceeds(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, planetMars)
	env.clock.Advance(600 * time.Second)

	s, err := env.svc.Return(context.Background(), testUser)
	require.NoError(t, err)
	assert.True(t, s.Success)
}

func TestReturn_SecondCallFailsWithoutRecrediting(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetMars)
	env.seed(t, exp, resourceIron, 2)

	_, err := env.svc.Return(context.Background(), testUser)
	require.NoError(t, err)

	_, err = env.svc.Return(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.svc.TimeUp(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(20), env.repo.balance(testUser))
	assert.Equal(t, 2, env.repo.held(testUser, resourceIron))
}

func TestReturn_ConcurrentSettlesOnce(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetMars)
	env.seed(t, exp, resourceGold, 2)

	var wg sync.WaitGroup
	var mu sync.Mutex
	settled := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.svc.Return(context.Background(), testUser); err == nil {
				mu.Lock()
				settled++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, settled)
	assert.Equal(t, int64(2*goldBaseValue), env.repo.balance(testUser))
}

func TestReturn_CommitFailureLeavesExpeditionActive(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetMars)
	env.seed(t, exp, resourceIron, 2)
	env.repo.failCommit = true

	_, err := env.svc.Return(context.Background(), testUser)
	assert.ErrorIs(t, err, errCommitFailed)

	assert.Equal(t, domain.ExpeditionStatusActive, env.repo.status(exp.ID))
	assert.Zero(t, env.repo.balance(testUser))
	assert.Zero(t, env.repo.held(testUser, resourceIron))
	assert.Zero(t, env.events.count(event.ExpeditionSettled))
}

func TestTimeUp_BeforeOrAtEndIsInvalid(t *testing.T) {
	env := newTestEnv(t)
	exp := env.start(t, planetMars)

	env.clock.Advance(599 * time.Second)
	_, err := env.svc.TimeUp(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Equal to end_time is not strictly after it
	env.clock.Advance(time.Second)
	_, err = env.svc.TimeUp(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Equal(t, domain.ExpeditionStatusActive, env.repo.status(exp.ID))
}

func TestTimeUp_AppliesInsurance(t *testing.T) {
	env := newTestEnv(t)
	env.boosts.set(domain.Boosts{InsuranceRecovery: 0.5})
	exp := env.start(t, planetMars)
	env.seed(t, exp, resourceIron, 6)
	env.seed(t, exp, resourceIron, 4)

	env.clock.Advance(600*time.Second + time.Millisecond)
	s, err := env.svc.TimeUp(context.Background(), testUser)
	require.NoError(t, err)

	assert.False(t, s.Success)
	assert.Equal(t, domain.ExpeditionStatusTimedOut, s.Status)
	require.Len(t, s.Resources, 1)
	assert.Equal(t, 5, s.Resources[0].Quantity)
	assert.Equal(t, int64(50), s.TotalValue)
	assert.Equal(t, "Expedition timed out! You recovered 50% of your resources worth 50 currency thanks to your insurance.", s.Message)
	assert.Equal(t, domain.ExpeditionStatusTimedOut, env.repo.status(exp.ID))
	assert.Equal(t, int64(50), env.repo.score(testUser, 3, 2026))
}

func TestTimeUp_InsuranceFloorsEachDraw(t *testing.T) {
	env := newTestEnv(t)
	env.boosts.set(domain.Boosts{InsuranceRecovery: 0.5})
	exp := env.start(t, planetMars)
	env.seed(t, exp, resourceIron, 1)
	env.seed(t, exp, resourceIron, 1)

	env.clock.Advance(600*time.Second + time.Millisecond)
	s, err := env.svc.TimeUp(context.Background(), testUser)
	require.NoError(t, err)

	require.Len(t, s.Resources, 1)
	assert.Equal(t, 0, s.Resources[0].Quantity)
	assert.Zero(t, s.TotalValue)
	assert.Zero(t, env.repo.held(testUser, resourceIron))
	assert.Zero(t, env.repo.balance(testUser))
	assert.Zero(t, env.repo.score(testUser, 3, 2026))
	assert.Equal(t, domain.ExpeditionStatusTimedOut, env.repo.status(exp.ID))
}

func TestTimeUp_InsuranceIsClamped(t *testing.T) {
	env := newTestEnv(t)
	env.boosts.set(domain.Boosts{InsuranceRecovery: 3})
	exp := env.start(t, planetMars)
	env.seed(t, exp, resourceIron, 4)

	env.clock.Advance(time.Hour)
	s, err := env.svc.TimeUp(context.Background(), testUser)
	require.NoError(t, err)

	require.NotNil(t, s.Recovery)
	assert.InDelta(t, 1.0, *s.Recovery, 1e-9)
	assert.Equal(t, 4, s.Resources[0].Quantity)
}

func TestTimeUp_NoActiveExpedition(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.TimeUp(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- queries ----

func TestGetActive(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.GetActive(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	exp := env.start(t, planetMars)
	env.clock.Advance(100*time.Second + 400*time.Millisecond)

	active, err := env.svc.GetActive(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, exp.ID, active.Expedition.ID)
	assert.Equal(t, "Mars", active.PlanetName)
	assert.Equal(t, 600, active.BaseTime)
	assert.Equal(t, int64(499), active.RemainingSeconds)

	env.clock.Advance(time.Hour)
	active, err = env.svc.GetActive(context.Background(), testUser)
	require.NoError(t, err)
	assert.Zero(t, active.RemainingSeconds)
}

func TestGetHistory(t *testing.T) {
	env := newTestEnv(t)

	first := env.start(t, planetMars)
	env.seed(t, first, resourceIron, 2)
	env.seed(t, first, resourceIron, 3)
	_, err := env.svc.Return(context.Background(), testUser)
	require.NoError(t, err)

	env.clock.Advance(time.Minute)
	second := env.start(t, planetBarren)
	env.clock.Advance(time.Hour)
	_, err = env.svc.TimeUp(context.Background(), testUser)
	require.NoError(t, err)

	env.clock.Advance(time.Minute)
	env.start(t, planetMars) // still active, not in history

	history, err := env.svc.GetHistory(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, second.ID, history[0].Expedition.ID)
	assert.Equal(t, "Barren Rock", history[0].PlanetName)
	assert.Empty(t, history[0].Resources)

	assert.Equal(t, first.ID, history[1].Expedition.ID)
	assert.Len(t, history[1].Resources, 2, "raw entries are not merged")
	assert.Equal(t, int64(5*ironBaseValue), history[1].TotalValue)
}

func TestExpeditionDuration(t *testing.T) {
	assert.Equal(t, 600*time.Second, ExpeditionDuration(600, 0))
	assert.Equal(t, 750*time.Second, ExpeditionDuration(600, 0.25))
	assert.Equal(t, 600*time.Second, ExpeditionDuration(600, -1))
}
