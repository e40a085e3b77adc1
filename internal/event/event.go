package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// UserID returns the user the event belongs to, or "" for broadcast events
func (e Event) UserID() string {
	if id, ok := e.GetMetadataValue(MetadataKeyUserID).(string); ok {
		return id
	}
	return ""
}

// MetadataKeyUserID scopes an event to a single user's stream
const MetadataKeyUserID = "user_id"

// Expedition event types
const (
	ExpeditionStarted Type = domain.EventTypeExpeditionStarted
	ResourceFound     Type = domain.EventTypeResourceFound
	DangerTriggered   Type = domain.EventTypeDanger
	ExpeditionSettled Type = domain.EventTypeExpeditionSettled
	UpgradeGranted    Type = domain.EventTypeUpgradeGranted
)

// AllTypes lists the event types relayed to clients
var AllTypes = []Type{ExpeditionStarted, ResourceFound, DangerTriggered, ExpeditionSettled, UpgradeGranted}

func userMetadata(userID string) Metadata {
	return map[string]interface{}{
		MetadataKeyUserID: userID,
		"timestamp":       time.Now().Unix(),
	}
}

// NewExpeditionStartedEvent creates a new expedition started event
func NewExpeditionStartedEvent(exp domain.Expedition, planetName string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ExpeditionStarted,
		Payload: domain.ExpeditionStartedPayload{
			ExpeditionID: exp.ID.String(),
			UserID:       exp.UserID,
			PlanetID:     exp.PlanetID,
			PlanetName:   planetName,
			EndTime:      exp.EndTime.Unix(),
		},
		Metadata: userMetadata(exp.UserID),
	}
}

// NewResourceFoundEvent creates a new resource found event
func NewResourceFoundEvent(exp domain.Expedition, action domain.ResourceAction, res domain.SampledResource) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ResourceFound,
		Payload: domain.ResourceFoundPayload{
			ExpeditionID: exp.ID.String(),
			UserID:       exp.UserID,
			Action:       action,
			ResourceID:   res.ResourceID,
			ResourceName: res.Name,
			Quantity:     res.Quantity,
		},
		Metadata: userMetadata(exp.UserID),
	}
}

// NewDangerEvent creates a new danger event
func NewDangerEvent(exp domain.Expedition, danger domain.DangerEvent) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DangerTriggered,
		Payload: domain.DangerPayload{
			ExpeditionID: exp.ID.String(),
			UserID:       exp.UserID,
			Danger:       danger,
		},
		Metadata: userMetadata(exp.UserID),
	}
}

// NewExpeditionSettledEvent creates a new expedition settled event
func NewExpeditionSettledEvent(userID string, s domain.Settlement) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ExpeditionSettled,
		Payload: domain.ExpeditionSettledPayload{
			ExpeditionID: s.ExpeditionID.String(),
			UserID:       userID,
			Status:       s.Status,
			Success:      s.Success,
			TotalValue:   s.TotalValue,
		},
		Metadata: userMetadata(userID),
	}
}

// NewUpgradeGrantedEvent creates a new upgrade granted event
func NewUpgradeGrantedEvent(u domain.UserUpgrade) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     UpgradeGranted,
		Payload:  u,
		Metadata: userMetadata(u.UserID),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
