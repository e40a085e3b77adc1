package domain

// Event type constants published on the event bus and relayed to SSE clients.
//
// Event types follow the pattern: <entity>.<action> (e.g., "expedition.started")
const (
	// EventTypeExpeditionStarted is published when a user begins an expedition
	EventTypeExpeditionStarted = "expedition.started"

	// EventTypeResourceFound is published for each resource sampled by mine or explore
	EventTypeResourceFound = "expedition.resource_found"

	// EventTypeDanger is published when an advisory danger event fires
	EventTypeDanger = "expedition.danger"

	// EventTypeExpeditionSettled is published after a return or time-up is committed
	EventTypeExpeditionSettled = "expedition.settled"

	EventTypeUpgradeGranted = "upgrade.granted"
)

// ExpeditionStartedPayload is the payload for EventTypeExpeditionStarted
type ExpeditionStartedPayload struct {
	ExpeditionID string `json:"expedition_id"`
	UserID       string `json:"user_id"`
	PlanetID     int    `json:"planet_id"`
	PlanetName   string `json:"planet_name"`
	EndTime      int64  `json:"end_time"`
}

// ResourceFoundPayload is the payload for EventTypeResourceFound
type ResourceFoundPayload struct {
	ExpeditionID string         `json:"expedition_id"`
	UserID       string         `json:"user_id"`
	Action       ResourceAction `json:"action"`
	ResourceID   int            `json:"resource_id"`
	ResourceName string         `json:"resource_name"`
	Quantity     int            `json:"quantity"`
}

// DangerPayload is the payload for EventTypeDanger
type DangerPayload struct {
	ExpeditionID string      `json:"expedition_id"`
	UserID       string      `json:"user_id"`
	Danger       DangerEvent `json:"danger"`
}

// ExpeditionSettledPayload is the payload for EventTypeExpeditionSettled
type ExpeditionSettledPayload struct {
	ExpeditionID string           `json:"expedition_id"`
	UserID       string           `json:"user_id"`
	Status       ExpeditionStatus `json:"status"`
	Success      bool             `json:"success"`
	TotalValue   int64            `json:"total_value"`
}
