package sprout

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSettings is returned by LoadSettings and Settings.Validate.
var ErrInvalidSettings = errors.New("sprout: invalid settings")

// Settings is an immutable snapshot of environmental conditions handed to
// each growth tick. Swap the whole value between ticks to change conditions.
type Settings struct {
	Sunlight   float64 `json:"sunlight"`   // [0, 1]
	Gravity    float64 `json:"gravity"`    // [0, 20], m/s^2
	Moisture   float64 `json:"moisture"`   // [0, 1]
	Nitrogen   float64 `json:"nitrogen"`   // >= 0
	Potassium  float64 `json:"potassium"`  // >= 0
	Phosphorus float64 `json:"phosphorus"` // >= 0
}

// DefaultSettings returns full sun and moisture, Earth gravity and unit nutrients.
func DefaultSettings() Settings {
	return Settings{
		Sunlight:   1.0,
		Gravity:    9.8,
		Moisture:   1.0,
		Nitrogen:   1.0,
		Potassium:  1.0,
		Phosphorus: 1.0,
	}
}

// LoadSettings parses a JSON settings document. Fields missing from the
// document keep their DefaultSettings values.
func LoadSettings(jsonData []byte) (Settings, error) {
	s := DefaultSettings()
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first field outside its allowed range.
func (s Settings) Validate() error {
	checks := []struct {
		name     string
		v        float64
		min, max float64
	}{
		{"sunlight", s.Sunlight, 0, 1},
		{"gravity", s.Gravity, 0, 20},
		{"moisture", s.Moisture, 0, 1},
		{"nitrogen", s.Nitrogen, 0, -1},
		{"potassium", s.Potassium, 0, -1},
		{"phosphorus", s.Phosphorus, 0, -1},
	}
	for _, c := range checks {
		// max < min means unbounded above.
		if c.v < c.min || (c.max >= c.min && c.v > c.max) || math.IsNaN(c.v) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidSettings, c.name, c.v)
		}
	}
	return nil
}
