package expedition

import (
	"math"
	"math/rand"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// randIntInclusive draws uniformly from [r.Min, r.Max]
func randIntInclusive(rng *rand.Rand, r Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// pickWeighted selects one entry with probability proportional to its spawn rate.
// It returns nil for an empty or zero-weight table.
func pickWeighted(rng *rand.Rand, entries []domain.SpawnEntry) *domain.SpawnEntry {
	var total float64
	for _, e := range entries {
		total += e.SpawnRate
	}
	if total <= 0 {
		return nil
	}

	x := rng.Float64() * total
	var cumulative float64
	for i := range entries {
		cumulative += entries[i].SpawnRate
		if cumulative >= x {
			return &entries[i]
		}
	}
	// Float rounding can leave x marginally above the final running sum
	return &entries[len(entries)-1]
}

// YieldQuantity applies rarity, planet multiplier and drone boost to a base quantity.
// The result is never below 1.
func YieldQuantity(baseQty, rarity int, multiplier, droneBoost float64) int {
	if rarity < 1 {
		rarity = 1
	}
	rarityFactor := 1 / float64(rarity)
	qty := int(math.Floor(float64(baseQty) * rarityFactor * multiplier))
	if qty < 1 {
		qty = 1
	}
	if droneBoost > 0 {
		qty += int(math.Floor(float64(qty) * droneBoost))
	}
	return qty
}

// Sample performs one independent weighted draw over the spawn table.
// It returns nil when the table is empty.
func Sample(rng *rand.Rand, entries []domain.SpawnEntry, qtyRange Range, multiplier, droneBoost float64) *domain.SampledResource {
	picked := pickWeighted(rng, entries)
	if picked == nil {
		return nil
	}

	res := picked.Resource
	qty := YieldQuantity(randIntInclusive(rng, qtyRange), res.Rarity, multiplier, droneBoost)

	return &domain.SampledResource{
		ResourceID:  res.ID,
		Name:        res.Name,
		Quantity:    qty,
		Value:       res.BaseValue * qty,
		Rarity:      res.Rarity,
		ImageURL:    res.ImageURL,
		Description: res.Description,
	}
}
