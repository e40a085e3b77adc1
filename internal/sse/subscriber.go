package sse

import (
	"context"
	"log/slog"

	"github.com/spaceminer/spaceminer-server/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the relay handler for every client-facing event type
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.AllTypes))
	for _, t := range event.AllTypes {
		s.bus.Subscribe(t, s.relay)
		types = append(types, string(t))
	}
	slog.Info("SSE subscriber registered for event types", "types", types)
}

// relay forwards a bus event to the hub, scoped to the event's user
func (s *Subscriber) relay(_ context.Context, evt event.Event) error {
	userID := evt.UserID()
	s.hub.Broadcast(string(evt.Type), userID, evt.Payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"user_id", userID)
	return nil
}
