package bootstrap

import (
	"log/slog"

	"github.com/spaceminer/spaceminer-server/internal/event"
	"github.com/spaceminer/spaceminer-server/internal/metrics"
	"github.com/spaceminer/spaceminer-server/internal/sse"
)

// EventSystem is the in-memory bus with its subscribers
type EventSystem struct {
	Bus event.Bus
	// Hub is nil when no SSE clients are served from this process
	Hub *sse.Hub
}

// InitializeEventSystem creates the event bus and registers the metrics collector.
// With withSSE set it also starts an SSE hub relaying expedition events to clients.
func InitializeEventSystem(withSSE bool) *EventSystem {
	bus := event.NewMemoryBus()

	metrics.NewEventMetricsCollector().Register(bus)

	sys := &EventSystem{Bus: bus}
	if withSSE {
		sys.Hub = sse.NewHub()
		sys.Hub.Start()
		sse.NewSubscriber(sys.Hub, bus).Subscribe()
	}

	slog.Info(LogMsgEventSystemReady, "sse", withSSE)
	return sys
}
