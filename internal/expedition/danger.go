package expedition

import (
	"math/rand"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// Danger archetype types
const (
	DangerTemperature     = "temperature"
	DangerRadiation       = "radiation"
	DangerMagneticStorm   = "magnetic_storm"
	DangerLandslide       = "landslide"
	DangerHostileCreature = "hostile_creature"
)

// dangerCatalog is the fixed set of archetypes. Effects are display strings only.
var dangerCatalog = []domain.DangerEvent{
	{
		Type:        DangerTemperature,
		Name:        "Extreme Temperature",
		Description: "The temperature has suddenly changed to dangerous levels!",
		Effect:      "Your suit protection is decreasing faster.",
		Icon:        "fa-thermometer-full",
	},
	{
		Type:        DangerRadiation,
		Name:        "Radiation Spike",
		Description: "A sudden spike in radiation levels detected!",
		Effect:      "Your health is decreasing faster.",
		Icon:        "fa-radiation",
	},
	{
		Type:        DangerMagneticStorm,
		Name:        "Magnetic Storm",
		Description: "A powerful magnetic storm is affecting your equipment!",
		Effect:      "Your mining efficiency is reduced.",
		Icon:        "fa-bolt",
	},
	{
		Type:        DangerLandslide,
		Name:        "Landslide",
		Description: "The ground is unstable and rocks are falling!",
		Effect:      "You need to move carefully, reducing your mining speed.",
		Icon:        "fa-mountain",
	},
	{
		Type:        DangerHostileCreature,
		Name:        "Hostile Creature",
		Description: "A dangerous alien creature is approaching!",
		Effect:      "You need to be on alert, reducing your focus on mining.",
		Icon:        "fa-spider",
	},
}

// advertisedWeights scale the per-level chance for each archetype on the planet danger table
var advertisedWeights = []float64{0.05, 0.04, 0.03, 0.02, 0.01}

// DangerArchetypes returns a copy of the archetype catalog
func DangerArchetypes() []domain.DangerEvent {
	out := make([]domain.DangerEvent, len(dangerCatalog))
	copy(out, dangerCatalog)
	return out
}

// DangerChance returns the probability that a roll on a planet fires
func DangerChance(dangerLevel int, chancePerLevel float64) float64 {
	p := float64(dangerLevel) * chancePerLevel
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// RollDanger performs one Bernoulli trial and, on success, a uniform archetype pick.
// It returns nil when no danger occurs.
func RollDanger(rng *rand.Rand, dangerLevel int, chancePerLevel float64) *domain.DangerEvent {
	if rng.Float64() >= DangerChance(dangerLevel, chancePerLevel) {
		return nil
	}
	d := dangerCatalog[rng.Intn(len(dangerCatalog))]
	return &d
}

// PlanetDangers lists every archetype with the probability advertised for the planet
func PlanetDangers(planet domain.Planet) []domain.DangerChance {
	out := make([]domain.DangerChance, 0, len(dangerCatalog))
	for i, d := range dangerCatalog {
		out = append(out, domain.DangerChance{
			Type:        d.Type,
			Name:        d.Name,
			Probability: float64(planet.DangerLevel) * advertisedWeights[i],
		})
	}
	return out
}
