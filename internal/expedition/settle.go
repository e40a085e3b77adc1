package expedition

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/event"
	"github.com/spaceminer/spaceminer-server/internal/logger"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// ClampRecovery bounds an insurance boost to a valid recovery fraction
func ClampRecovery(r float64) float64 {
	switch {
	case math.IsNaN(r) || r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// ComputeSettlement derives the credited resource list, the inventory credits and
// the total value from the raw resource log of an expedition, one entry per draw.
//
// A successful expedition credits everything. A failed one credits floor(q*recovery)
// for each log entry, then sums per resource; reduced resources carry their original
// quantity. A failure without recovery credits nothing and returns an empty list.
// Output keeps the order in which resources first appear in the log.
func ComputeSettlement(entries []domain.CollectedResource, success bool, recovery float64) ([]domain.CollectedResource, []domain.SettlementCredit, int64) {
	resources := make([]domain.CollectedResource, 0, len(entries))
	var credits []domain.SettlementCredit
	var total int64

	if !success && recovery <= 0 {
		return resources, nil, 0
	}

	index := make(map[int]int)
	originals := make([]int, 0, len(entries))
	for _, e := range entries {
		credited := e.Quantity
		if !success {
			credited = int(math.Floor(float64(e.Quantity) * recovery))
		}

		i, ok := index[e.ResourceID]
		if !ok {
			i = len(resources)
			index[e.ResourceID] = i
			agg := e
			agg.Quantity = 0
			agg.OriginalQuantity = nil
			resources = append(resources, agg)
			originals = append(originals, 0)
		}
		resources[i].Quantity += credited
		originals[i] += e.Quantity
	}

	for i := range resources {
		r := &resources[i]
		if r.Quantity != originals[i] {
			original := originals[i]
			r.OriginalQuantity = &original
		}
		if r.Quantity > 0 {
			credits = append(credits, domain.SettlementCredit{ResourceID: r.ResourceID, Quantity: r.Quantity})
			total += int64(r.BaseValue) * int64(r.Quantity)
		}
	}
	return resources, credits, total
}

func settlementMessage(success, timeUp bool, recovery float64, total int64) string {
	p := message.NewPrinter(language.English)
	percent := int(math.Round(recovery * 100))

	switch {
	case success:
		return p.Sprintf(MsgReturnSuccessFormat, total)
	case timeUp && recovery > 0:
		return p.Sprintf(MsgTimeUpRecoveredFormat, percent, total)
	case timeUp:
		return MsgTimeUpLost
	case recovery > 0:
		return p.Sprintf(MsgReturnRecoveredFormat, percent, total)
	default:
		return MsgReturnLost
	}
}

func (s *service) Return(ctx context.Context, userID string) (*domain.Settlement, error) {
	logger.FromContext(ctx).Info("Return called", "userID", userID)

	var result *domain.Settlement
	err := s.locks.WithLock(userID, func() error {
		var err error
		result, err = s.settleLocked(ctx, userID, false, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) TimeUp(ctx context.Context, userID string) (*domain.Settlement, error) {
	logger.FromContext(ctx).Info("TimeUp called", "userID", userID)

	var result *domain.Settlement
	err := s.locks.WithLock(userID, func() error {
		var err error
		result, err = s.settleLocked(ctx, userID, true, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settleLocked performs the single active -> terminal transition of the user's
// expedition together with every credit it produces. Callers must hold the user's lock.
func (s *service) settleLocked(ctx context.Context, userID string, timeUp bool, now time.Time) (*domain.Settlement, error) {
	log := logger.FromContext(ctx)

	exp, err := s.repo.GetActiveExpedition(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active expedition: %w", err)
	}
	if exp == nil {
		return nil, domain.ErrExpeditionNotFound
	}
	if timeUp && !now.After(exp.EndTime) {
		return nil, domain.ErrNotExpired
	}

	success := !timeUp && exp.WithinWindow(now)
	status := domain.ExpeditionStatusCompleted
	if timeUp {
		status = domain.ExpeditionStatusTimedOut
	}

	var recovery float64
	if !success {
		boosts, err := s.boosts.GetBoosts(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get boosts: %w", err)
		}
		recovery = ClampRecovery(boosts.InsuranceRecovery)
	}

	tx, err := s.repo.BeginExpeditionTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	locked, err := tx.GetExpeditionForUpdate(ctx, exp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock expedition: %w", err)
	}
	if locked == nil || locked.Status != domain.ExpeditionStatusActive {
		log.Warn(LogMsgSettlementRollback, "userID", userID, "expeditionID", exp.ID)
		return nil, domain.ErrExpeditionNotFound
	}

	collected, err := tx.GetCollectedResources(ctx, exp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collected resources: %w", err)
	}

	resources, credits, total := ComputeSettlement(collected, success, recovery)

	affected, err := tx.UpdateExpeditionStatusIfActive(ctx, exp.ID, status, success)
	if err != nil {
		return nil, fmt.Errorf("failed to update expedition status: %w", err)
	}
	if affected == 0 {
		log.Warn(LogMsgSettlementRollback, "userID", userID, "expeditionID", exp.ID)
		return nil, domain.ErrExpeditionNotFound
	}

	for _, c := range credits {
		if err := tx.AddInventory(ctx, userID, c.ResourceID, c.Quantity); err != nil {
			return nil, fmt.Errorf("failed to credit inventory: %w", err)
		}
	}

	if total > 0 {
		if err := tx.AddCurrency(ctx, userID, total); err != nil {
			return nil, fmt.Errorf("failed to credit currency: %w", err)
		}
		utc := now.UTC()
		if err := tx.AddLeaderboardScore(ctx, userID, int(utc.Month()), utc.Year(), total); err != nil {
			return nil, fmt.Errorf("failed to update leaderboard: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	settlement := &domain.Settlement{
		ExpeditionID: exp.ID,
		Status:       status,
		Success:      success,
		Resources:    resources,
		TotalValue:   total,
		Message:      settlementMessage(success, timeUp, recovery, total),
	}
	if !success {
		r := recovery
		settlement.Recovery = &r
	}

	log.Info(LogMsgExpeditionSettled, "userID", userID, "expeditionID", exp.ID, "status", status,
		"success", success, "recovery", recovery, "totalValue", total)
	s.publish(ctx, event.NewExpeditionSettledEvent(userID, *settlement))

	return settlement, nil
}
