package expedition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/event"
	"github.com/spaceminer/spaceminer-server/internal/logger"
)

// ExpeditionDuration computes the window length from the planet base time and suit autonomy boost
func ExpeditionDuration(baseTimeSeconds int, suitAutonomy float64) time.Duration {
	if suitAutonomy < 0 {
		suitAutonomy = 0
	}
	return time.Duration(float64(baseTimeSeconds) * (1 + suitAutonomy) * float64(time.Second))
}

func (s *service) Start(ctx context.Context, userID string, planetID int) (*domain.StartResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Start called", "userID", userID, "planetID", planetID)

	var result *domain.StartResult
	err := s.locks.WithLock(userID, func() error {
		now := s.now()

		active, err := s.repo.GetActiveExpedition(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get active expedition: %w", err)
		}

		var closed *domain.Settlement
		if active != nil {
			if active.WithinWindow(now) || !s.settings.LazyCloseOnStart {
				return domain.ErrConflict
			}
			log.Info(LogMsgLazyClose, "userID", userID, "expeditionID", active.ID, "endTime", active.EndTime)
			closed, err = s.settleLocked(ctx, userID, true, now)
			if err != nil {
				return fmt.Errorf("failed to close expired expedition: %w", err)
			}
		}

		planet, err := s.catalog.GetPlanet(ctx, planetID)
		if err != nil {
			return err
		}

		boosts, err := s.boosts.GetBoosts(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get boosts: %w", err)
		}

		duration := ExpeditionDuration(planet.BaseTime, boosts.SuitAutonomy)
		exp := &domain.Expedition{
			ID:        uuid.New(),
			UserID:    userID,
			PlanetID:  planet.ID,
			StartTime: now,
			EndTime:   now.Add(duration),
			Status:    domain.ExpeditionStatusActive,
			Success:   false,
		}

		if err := s.repo.CreateExpedition(ctx, exp); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return err
			}
			return fmt.Errorf("failed to create expedition: %w", err)
		}

		result = &domain.StartResult{
			Expedition:       *exp,
			CountdownSeconds: duration.Seconds(),
			Message:          MsgExpeditionStarted,
			Closed:           closed,
		}

		log.Info(LogMsgExpeditionStarted, "userID", userID, "expeditionID", exp.ID, "planetID", planet.ID, "duration", duration)
		s.publish(ctx, event.NewExpeditionStartedEvent(*exp, planet.Name))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
