package domain

import "time"

// UpgradeType is the kind of boost a user upgrade grants
type UpgradeType string

const (
	UpgradeSuitAutonomy      UpgradeType = "suit_autonomy"
	UpgradeDroneCollection   UpgradeType = "drone_collection"
	UpgradeInsuranceRecovery UpgradeType = "insurance_recovery"
	UpgradeSpeed             UpgradeType = "speed"
	UpgradeCapacity          UpgradeType = "capacity"
)

// ValidUpgradeTypes lists every upgrade type the ledger accepts
var ValidUpgradeTypes = []UpgradeType{
	UpgradeSuitAutonomy,
	UpgradeDroneCollection,
	UpgradeInsuranceRecovery,
	UpgradeSpeed,
	UpgradeCapacity,
}

// UserUpgrade is one ledger entry owned by the shop
type UserUpgrade struct {
	ID         int64       `json:"id"`
	UserID     string      `json:"user_id"`
	Type       UpgradeType `json:"type"`
	BoostValue float64     `json:"boost_value"`
	Active     bool        `json:"active"`
	ExpiresAt  *time.Time  `json:"expires_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Effective reports whether the entry participates in calculations at now
func (u *UserUpgrade) Effective(now time.Time) bool {
	if !u.Active {
		return false
	}
	return u.ExpiresAt == nil || u.ExpiresAt.After(now)
}

// Boosts holds the aggregated boost values the expedition engine reads.
// Zero means no active upgrade of that type.
type Boosts struct {
	SuitAutonomy      float64 `json:"suit_autonomy"`
	DroneCollection   float64 `json:"drone_collection"`
	InsuranceRecovery float64 `json:"insurance_recovery"`
	Speed             float64 `json:"speed"`
	Capacity          float64 `json:"capacity"`
}
