package config

import (
	"fmt"
	"sort"
)

// Presets are named starting points for common regimes.
var Presets = map[string]func(*Config){
	"chaotic": func(c *Config) {
		c.Neuron.E = 3.25
	},
	"bursting": func(c *Config) {
		c.Neuron.E = 3.0
	},
	"spiking": func(c *Config) {
		c.Neuron.E = 3.5
		c.Timing.BurstDuration = 0
		c.Timing.TimeIncrement = 0.0001
	},
	"quiescent": func(c *Config) {
		c.Neuron.E = 1.0
	},
	"strict": func(c *Config) {
		c.Timing.Policy = "strict"
	},
	"continuous": func(c *Config) {
		c.Timing.BurstDuration = 0
	},
}

// GetPreset returns the default config with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
