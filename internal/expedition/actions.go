package expedition

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/event"
	"github.com/spaceminer/spaceminer-server/internal/logger"
)

// activeInWindow loads the user's active expedition and checks its window.
// Callers must hold the user's lock.
func (s *service) activeInWindow(ctx context.Context, userID string) (*domain.Expedition, error) {
	exp, err := s.repo.GetActiveExpedition(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active expedition: %w", err)
	}
	if exp == nil {
		return nil, domain.ErrExpeditionNotFound
	}
	if !exp.WithinWindow(s.now()) {
		return nil, domain.ErrExpired
	}
	return exp, nil
}

// yieldInputs gathers everything the sampler needs for an expedition
func (s *service) yieldInputs(ctx context.Context, exp *domain.Expedition) (*domain.Planet, []domain.SpawnEntry, domain.Boosts, error) {
	planet, err := s.catalog.GetPlanet(ctx, exp.PlanetID)
	if err != nil {
		return nil, nil, domain.Boosts{}, err
	}
	table, err := s.catalog.GetSpawnTable(ctx, exp.PlanetID)
	if err != nil {
		return nil, nil, domain.Boosts{}, fmt.Errorf("failed to get spawn table: %w", err)
	}
	boosts, err := s.boosts.GetBoosts(ctx, exp.UserID)
	if err != nil {
		return nil, nil, domain.Boosts{}, fmt.Errorf("failed to get boosts: %w", err)
	}
	return planet, table, boosts, nil
}

func (s *service) recordResource(ctx context.Context, exp *domain.Expedition, res *domain.SampledResource) error {
	entry := &domain.ExpeditionResource{
		ExpeditionID: exp.ID,
		ResourceID:   res.ResourceID,
		Quantity:     res.Quantity,
		CreatedAt:    s.now(),
	}
	if err := s.repo.AddResource(ctx, entry); err != nil {
		return fmt.Errorf("failed to record resource: %w", err)
	}
	return nil
}

func (s *service) Mine(ctx context.Context, userID string, method domain.MiningMethod) (*domain.MineResult, error) {
	log := logger.FromContext(ctx)

	if method != domain.MiningMethodManual && method != domain.MiningMethodAuto {
		return nil, fmt.Errorf("%w: unknown mining method %q", domain.ErrInvalidInput, method)
	}

	var result *domain.MineResult
	err := s.locks.WithLock(userID, func() error {
		exp, err := s.activeInWindow(ctx, userID)
		if err != nil {
			return err
		}

		planet, table, boosts, err := s.yieldInputs(ctx, exp)
		if err != nil {
			return err
		}

		var sampled *domain.SampledResource
		var danger *domain.DangerEvent
		s.withRand(func(rng *rand.Rand) {
			sampled = Sample(rng, table, s.settings.quantityRange(method), planet.ResourceMultiplier, boosts.DroneCollection)
			danger = RollDanger(rng, planet.DangerLevel, s.settings.DangerChancePerLevel)
		})

		result = &domain.MineResult{Danger: danger, Message: MsgNothingMined}
		if sampled != nil {
			if err := s.recordResource(ctx, exp, sampled); err != nil {
				return err
			}
			result.Resource = sampled
			result.Message = message.NewPrinter(language.English).Sprintf(MsgMinedFormat, sampled.Quantity, sampled.Name)

			log.Info(LogMsgResourceMined, "userID", userID, "expeditionID", exp.ID, "resourceID", sampled.ResourceID, "quantity", sampled.Quantity, "method", method)
			s.publish(ctx, event.NewResourceFoundEvent(*exp, domain.ResourceActionMine, *sampled))
		}

		if danger != nil {
			log.Info(LogMsgDangerRolled, "userID", userID, "expeditionID", exp.ID, "danger", danger.Type)
			s.publish(ctx, event.NewDangerEvent(*exp, *danger))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Explore(ctx context.Context, userID string) (*domain.ExploreResult, error) {
	log := logger.FromContext(ctx)

	var result *domain.ExploreResult
	err := s.locks.WithLock(userID, func() error {
		exp, err := s.activeInWindow(ctx, userID)
		if err != nil {
			return err
		}

		planet, table, boosts, err := s.yieldInputs(ctx, exp)
		if err != nil {
			return err
		}

		var found []domain.SampledResource
		s.withRand(func(rng *rand.Rand) {
			draws := randIntInclusive(rng, s.settings.ExploreDraws)
			for i := 0; i < draws; i++ {
				if res := Sample(rng, table, s.settings.ExploreQuantity, planet.ResourceMultiplier, boosts.DroneCollection); res != nil {
					found = append(found, *res)
				}
			}
		})

		// Each draw is its own log entry; duplicates are not merged here
		for i := range found {
			if err := s.recordResource(ctx, exp, &found[i]); err != nil {
				return err
			}
		}

		if found == nil {
			found = []domain.SampledResource{}
		}
		result = &domain.ExploreResult{
			Resources: found,
			Message:   message.NewPrinter(language.English).Sprintf(MsgExploredFormat, len(found)),
		}

		log.Info(LogMsgAreaExplored, "userID", userID, "expeditionID", exp.ID, "found", len(found))
		for _, res := range found {
			s.publish(ctx, event.NewResourceFoundEvent(*exp, domain.ResourceActionExplore, res))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) CheckDanger(ctx context.Context, userID string) (*domain.DangerEvent, error) {
	var danger *domain.DangerEvent
	err := s.locks.WithLock(userID, func() error {
		exp, err := s.activeInWindow(ctx, userID)
		if err != nil {
			return err
		}

		planet, err := s.catalog.GetPlanet(ctx, exp.PlanetID)
		if err != nil {
			return err
		}

		s.withRand(func(rng *rand.Rand) {
			danger = RollDanger(rng, planet.DangerLevel, s.settings.DangerChancePerLevel)
		})
		if danger != nil {
			logger.FromContext(ctx).Info(LogMsgDangerRolled, "userID", userID, "expeditionID", exp.ID, "danger", danger.Type)
			s.publish(ctx, event.NewDangerEvent(*exp, *danger))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return danger, nil
}
