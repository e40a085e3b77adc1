package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpeditionStatus is the persisted lifecycle state of an expedition
type ExpeditionStatus string

const (
	ExpeditionStatusActive    ExpeditionStatus = "active"
	ExpeditionStatusCompleted ExpeditionStatus = "completed"
	ExpeditionStatusTimedOut  ExpeditionStatus = "timed_out"
)

// IsTerminal reports whether the status can no longer change
func (s ExpeditionStatus) IsTerminal() bool {
	return s == ExpeditionStatusCompleted || s == ExpeditionStatusTimedOut
}

// MiningMethod selects the base-quantity range used by a mine action
type MiningMethod string

const (
	MiningMethodManual MiningMethod = "manual"
	MiningMethodAuto   MiningMethod = "auto"
)

// ResourceAction identifies which expedition action produced a resource entry
type ResourceAction string

const (
	ResourceActionMine    ResourceAction = "mine"
	ResourceActionCollect ResourceAction = "collect"
	ResourceActionExplore ResourceAction = "explore"
)

// Expedition is a single timed session a user runs on one planet
type Expedition struct {
	ID        uuid.UUID        `json:"id"`
	UserID    string           `json:"user_id"`
	PlanetID  int              `json:"planet_id"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Status    ExpeditionStatus `json:"status"`
	Success   bool             `json:"success"`
}

// Remaining returns the time left before the expedition window closes, never negative
func (e *Expedition) Remaining(now time.Time) time.Duration {
	if d := e.EndTime.Sub(now); d > 0 {
		return d
	}
	return 0
}

// WithinWindow reports whether now is at or before the end time.
// The end instant itself still counts as inside the window.
func (e *Expedition) WithinWindow(now time.Time) bool {
	return !now.After(e.EndTime)
}

// ExpeditionResource is one raw entry appended to an expedition while it is active.
// Entries are never merged per action; settlement aggregates them by resource.
type ExpeditionResource struct {
	ID           int64     `json:"id"`
	ExpeditionID uuid.UUID `json:"expedition_id"`
	ResourceID   int       `json:"resource_id"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
}

// CollectedResource is an accumulated entry joined with its catalog data
type CollectedResource struct {
	ResourceID       int    `json:"resource_id"`
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	OriginalQuantity *int   `json:"original_quantity,omitempty"`
	BaseValue        int    `json:"base_value"`
	Rarity           int    `json:"rarity"`
	ImageURL         string `json:"image_url"`
}

// SampledResource is the output of one weighted draw of the yield sampler
type SampledResource struct {
	ResourceID  int    `json:"resource_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Value       int    `json:"value"`
	Rarity      int    `json:"rarity"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

// DangerEvent is an advisory hazard surfaced during an active expedition.
// It carries no mechanical effect on the expedition outcome.
type DangerEvent struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Effect      string `json:"effect"`
	Icon        string `json:"icon"`
}

// DangerChance is one archetype's advertised probability on a planet
type DangerChance struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// ActiveExpedition is the active expedition plus planet display data and countdown
type ActiveExpedition struct {
	Expedition       Expedition `json:"expedition"`
	PlanetName       string     `json:"planet_name"`
	PlanetImage      string     `json:"planet_image"`
	BaseTime         int        `json:"base_time"`
	RemainingSeconds int64      `json:"remaining_seconds"`
}

// StartResult is returned when an expedition begins
type StartResult struct {
	Expedition       Expedition `json:"expedition"`
	CountdownSeconds float64    `json:"countdown"`
	Message          string     `json:"message"`
	// Closed is set when a dangling expired expedition was settled before starting
	Closed           *Settlement `json:"closed,omitempty"`
}

// MineResult is the outcome of a single mine action
type MineResult struct {
	Resource *SampledResource `json:"resource,omitempty"`
	Danger   *DangerEvent     `json:"danger,omitempty"`
	Message  string           `json:"message"`
}

// ExploreResult is the outcome of one explore batch
type ExploreResult struct {
	Resources []SampledResource `json:"resources"`
	Message   string            `json:"message"`
}

// Settlement is the outcome of a terminal transition
type Settlement struct {
	ExpeditionID uuid.UUID           `json:"expedition_id"`
	Status       ExpeditionStatus    `json:"status"`
	Success      bool                `json:"success"`
	Recovery     *float64            `json:"recovery_percentage"`
	Resources    []CollectedResource `json:"resources"`
	TotalValue   int64               `json:"total_value"`
	Message      string              `json:"message"`
}

// SettlementCredit is one aggregated inventory credit applied at settlement
type SettlementCredit struct {
	ResourceID int
	Quantity   int
}

// ExpeditionHistoryEntry is a terminal expedition with its raw resource log
type ExpeditionHistoryEntry struct {
	Expedition  Expedition          `json:"expedition"`
	PlanetName  string              `json:"planet_name"`
	PlanetImage string              `json:"planet_image"`
	Resources   []CollectedResource `json:"resources"`
	TotalValue  int64               `json:"total_value"`
}
