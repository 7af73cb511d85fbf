package effect

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/preset.yaml
var defaultPresetYAML []byte

// Preset holds effect parameters loaded from YAML.
type Preset struct {
	DeathWave DeathWavePreset `yaml:"deathwave"`
	Ripple    RipplePreset    `yaml:"ripple"`
}

type DeathWavePreset struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Frames int    `yaml:"frames"`
	Easing string `yaml:"easing"`
}

type RipplePreset struct {
	ScaleX    float64 `yaml:"scale_x"`
	Frequency float64 `yaml:"frequency"`
	Frames    int     `yaml:"frames"`
}

// DefaultPreset returns the built-in parameters.
func DefaultPreset() Preset {
	var p Preset
	if err := yaml.Unmarshal(defaultPresetYAML, &p); err != nil {
		panic(fmt.Sprintf("embedded preset is invalid: %v", err))
	}
	return p
}

// LoadPreset reads a preset file on top of the built-in parameters, so a
// file only needs to name the values it changes. An empty path returns the
// built-in parameters.
func LoadPreset(path string) (Preset, error) {
	p := DefaultPreset()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("could not read preset %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("could not parse preset %q: %w", path, err)
	}
	return p, nil
}

// pick returns flag when it was given and preset otherwise.
func pick[T any](flag *T, preset T) *T {
	if flag != nil {
		return flag
	}
	return &preset
}
