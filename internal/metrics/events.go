package metrics

import (
	"context"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/event"
	"github.com/spaceminer/spaceminer-server/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ExpeditionStarted:
		p, err := event.DecodePayload[domain.ExpeditionStartedPayload](evt.Payload)
		if err != nil {
			return e.unexpected(ctx, evt)
		}
		ExpeditionsStarted.WithLabelValues(p.PlanetName).Inc()

	case event.ResourceFound:
		p, err := event.DecodePayload[domain.ResourceFoundPayload](evt.Payload)
		if err != nil {
			return e.unexpected(ctx, evt)
		}
		ResourcesMined.WithLabelValues(p.ResourceName, string(p.Action)).Add(float64(p.Quantity))

	case event.DangerTriggered:
		p, err := event.DecodePayload[domain.DangerPayload](evt.Payload)
		if err != nil {
			return e.unexpected(ctx, evt)
		}
		DangerEvents.WithLabelValues(p.Danger.Type).Inc()

	case event.ExpeditionSettled:
		p, err := event.DecodePayload[domain.ExpeditionSettledPayload](evt.Payload)
		if err != nil {
			return e.unexpected(ctx, evt)
		}
		ExpeditionsSettled.WithLabelValues(SettlementOutcome(p.Status, p.Success)).Inc()
		SettlementValue.Add(float64(p.TotalValue))
	}

	return nil
}

func (e *EventMetricsCollector) unexpected(ctx context.Context, evt event.Event) error {
	logger.FromContext(ctx).Debug(LogMsgUnexpectedPayload, "type", evt.Type)
	return nil
}

// SettlementOutcome maps a terminal status to its outcome label
func SettlementOutcome(status domain.ExpeditionStatus, success bool) string {
	switch {
	case status == domain.ExpeditionStatusTimedOut:
		return OutcomeTimedOut
	case success:
		return OutcomeSuccess
	default:
		return OutcomeFailed
	}
}
