package expedition

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaceminer/spaceminer-server/internal/domain"
)

// Range is an inclusive integer interval
type Range struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

func (r Range) valid() bool {
	return r.Min >= 0 && r.Max >= r.Min
}

// Settings holds the tunable parameters of the lifecycle engine
type Settings struct {
	ManualQuantity       Range   `toml:"manual_quantity"`
	AutoQuantity         Range   `toml:"auto_quantity"`
	ExploreDraws         Range   `toml:"explore_draws"`
	ExploreQuantity      Range   `toml:"explore_quantity"`
	DangerChancePerLevel float64 `toml:"danger_chance_per_level"`
	LazyCloseOnStart     bool    `toml:"lazy_close_on_start"`
	HistoryLimit         int     `toml:"history_limit"`
}

// DefaultSettings returns the stock game balance
func DefaultSettings() Settings {
	return Settings{
		ManualQuantity:       Range{Min: 2, Max: 6},
		AutoQuantity:         Range{Min: 1, Max: 3},
		ExploreDraws:         Range{Min: 2, Max: 4},
		ExploreQuantity:      Range{Min: 1, Max: 3},
		DangerChancePerLevel: 0.05,
		LazyCloseOnStart:     true,
		HistoryLimit:         10,
	}
}

// LoadSettings decodes a TOML tuning file over the defaults.
// A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to open expedition settings: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&settings); err != nil {
		return settings, fmt.Errorf("failed to parse expedition settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid expedition settings: %w", err)
	}
	return settings, nil
}

// Validate checks ranges and probabilities
func (s Settings) Validate() error {
	if !s.ManualQuantity.valid() {
		return fmt.Errorf("manual_quantity range is invalid: %+v", s.ManualQuantity)
	}
	if !s.AutoQuantity.valid() {
		return fmt.Errorf("auto_quantity range is invalid: %+v", s.AutoQuantity)
	}
	if !s.ExploreQuantity.valid() {
		return fmt.Errorf("explore_quantity range is invalid: %+v", s.ExploreQuantity)
	}
	if !s.ExploreDraws.valid() || s.ExploreDraws.Min < 1 {
		return fmt.Errorf("explore_draws range is invalid: %+v", s.ExploreDraws)
	}
	if s.DangerChancePerLevel < 0 || s.DangerChancePerLevel > 1 {
		return fmt.Errorf("danger_chance_per_level must be within [0,1]")
	}
	if s.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive")
	}
	return nil
}

// quantityRange returns the base-quantity range for a mining method
func (s Settings) quantityRange(method domain.MiningMethod) Range {
	if method == domain.MiningMethodAuto {
		return s.AutoQuantity
	}
	return s.ManualQuantity
}
