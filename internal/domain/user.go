package domain

import "time"

// User is a player identified by their Telegram account
type User struct {
	ID         string     `json:"id"`
	TelegramID int64      `json:"telegram_id"`
	Username   string     `json:"username"`
	Currency   int64      `json:"currency"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// InventoryEntry is a settled resource balance
type InventoryEntry struct {
	ResourceID int    `json:"resource_id"`
	Name       string `json:"name"`
	Rarity     int    `json:"rarity"`
	BaseValue  int    `json:"base_value"`
	ImageURL   string `json:"image_url"`
	Quantity   int    `json:"quantity"`
}

// Profile is a user with their settled inventory
type Profile struct {
	User      User             `json:"user"`
	Inventory []InventoryEntry `json:"inventory"`
}
