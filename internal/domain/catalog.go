package domain

// Rarity ordinals, common to legendary
const (
	RarityCommon    = 1
	RarityUncommon  = 2
	RarityRare      = 3
	RarityEpic      = 4
	RarityLegendary = 5
)

// Planet is immutable catalog data for an expedition destination
type Planet struct {
	ID                 int     `json:"id" yaml:"id"`
	Name               string  `json:"name" yaml:"name"`
	Description        string  `json:"description" yaml:"description"`
	Difficulty         int     `json:"difficulty" yaml:"difficulty"`
	BaseTime           int     `json:"base_time" yaml:"base_time"` // seconds
	ResourceMultiplier float64 `json:"resource_multiplier" yaml:"resource_multiplier"`
	DangerLevel        int     `json:"danger_level" yaml:"danger_level"`
	ImageURL           string  `json:"image_url" yaml:"image_url"`
}

// Resource is immutable catalog data for a minable resource
type Resource struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Rarity      int    `json:"rarity" yaml:"rarity"`
	BaseValue   int    `json:"base_value" yaml:"base_value"`
	ImageURL    string `json:"image_url" yaml:"image_url"`
}

// SpawnEntry pairs a resource with its weight on a particular planet
type SpawnEntry struct {
	Resource  Resource `json:"resource"`
	SpawnRate float64  `json:"spawn_rate"`
}

// SpawnRate is the raw (planet, resource, weight) row of the spawn table
type SpawnRate struct {
	PlanetID   int     `json:"planet_id" yaml:"planet_id"`
	ResourceID int     `json:"resource_id" yaml:"resource_id"`
	SpawnRate  float64 `json:"spawn_rate" yaml:"spawn_rate"`
}

// PlanetDetails is a planet with its spawn table
type PlanetDetails struct {
	Planet    Planet       `json:"planet"`
	Resources []SpawnEntry `json:"resources"`
}
