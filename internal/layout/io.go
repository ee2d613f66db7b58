package layout

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyLayout is returned when a layout file holds no records.
var ErrEmptyLayout = errors.New("layout contains no regions")

// Load reads an ordered list of region records.
// Both points.json and YAML layouts are accepted: every JSON document is valid YAML.
func Load(path string) ([]RectSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes, normalizes and validates layout records.
func Parse(data []byte) ([]RectSpec, error) {
	var specs []RectSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}

	for i := range specs {
		if err := specs[i].normalizeNames(); err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
	}

	if err := Validate(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// Write stores a layout as YAML
func Write(path string, specs []RectSpec) error {
	data, err := yaml.Marshal(specs)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the records themselves. Checking them against an image
// size is the extractor's job.
func Validate(specs []RectSpec) error {
	if len(specs) == 0 {
		return ErrEmptyLayout
	}
	for i, s := range specs {
		if s.Game == "" {
			return fmt.Errorf("region %d: game is empty", i)
		}
		if s.Empty() {
			return fmt.Errorf("region %d (%s): rectangle TL %v BR %v is empty or inverted", i, s.Game, s.TL, s.BR)
		}
	}
	return nil
}
