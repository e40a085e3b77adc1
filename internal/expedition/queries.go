package expedition

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/logger"
)

func (s *service) GetActive(ctx context.Context, userID string) (*domain.ActiveExpedition, error) {
	exp, err := s.repo.GetActiveExpedition(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to get active expedition", "error", err)
		return nil, fmt.Errorf("failed to get active expedition: %w", err)
	}
	if exp == nil {
		return nil, domain.ErrExpeditionNotFound
	}

	planet, err := s.catalog.GetPlanet(ctx, exp.PlanetID)
	if err != nil {
		return nil, err
	}

	return &domain.ActiveExpedition{
		Expedition:       *exp,
		PlanetName:       planet.Name,
		PlanetImage:      planet.ImageURL,
		BaseTime:         planet.BaseTime,
		RemainingSeconds: int64(math.Floor(exp.Remaining(s.now()).Seconds())),
	}, nil
}

func (s *service) GetHistory(ctx context.Context, userID string) ([]domain.ExpeditionHistoryEntry, error) {
	log := logger.FromContext(ctx)

	exps, err := s.repo.ListTerminalExpeditions(ctx, userID, s.settings.HistoryLimit)
	if err != nil {
		log.Error("Failed to list expeditions", "error", err)
		return nil, fmt.Errorf("failed to list expeditions: %w", err)
	}

	history := make([]domain.ExpeditionHistoryEntry, 0, len(exps))
	for _, exp := range exps {
		entry := domain.ExpeditionHistoryEntry{Expedition: exp}

		planet, err := s.catalog.GetPlanet(ctx, exp.PlanetID)
		switch {
		case err == nil:
			entry.PlanetName = planet.Name
			entry.PlanetImage = planet.ImageURL
		case errors.Is(err, domain.ErrNotFound):
			// Planet removed from the catalog since; keep the entry
		default:
			return nil, err
		}

		entry.Resources, err = s.repo.GetResourceLog(ctx, exp.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get resource log: %w", err)
		}
		for _, r := range entry.Resources {
			entry.TotalValue += int64(r.BaseValue) * int64(r.Quantity)
		}
		history = append(history, entry)
	}
	return history, nil
}
