package smell

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/leapstack-labs/datasmell/pkg/core"
)

// Config controls which checks are registered and their thresholds.
// It is applied once, when a registry is cloned.
type Config struct {
	// Disabled contains smell types to leave out
	Disabled map[core.DataSmellType]bool

	// Thresholds replaces the default mostly of a smell type
	Thresholds map[core.DataSmellType]float64
}

// NewConfig creates a configuration that keeps every check at its default.
func NewConfig() *Config {
	return &Config{
		Disabled:   make(map[core.DataSmellType]bool),
		Thresholds: make(map[core.DataSmellType]float64),
	}
}

// IsDisabled returns true if the smell should be left out.
func (c *Config) IsDisabled(st core.DataSmellType) bool {
	if c == nil {
		return false
	}
	return c.Disabled[st]
}

// GetMostly returns the threshold for a smell, applying any override.
func (c *Config) GetMostly(st core.DataSmellType, defaultMostly float64) float64 {
	if c != nil {
		if m, ok := c.Thresholds[st]; ok {
			return m
		}
	}
	return defaultMostly
}

// Disable leaves a smell type out.
func (c *Config) Disable(st core.DataSmellType) *Config {
	c.Disabled[st] = true
	return c
}

// SetMostly overrides the threshold of a smell type.
func (c *Config) SetMostly(st core.DataSmellType, mostly float64) *Config {
	c.Thresholds[st] = mostly
	return c
}

// ConfigFromMaps builds a Config from loosely typed settings such as a
// decoded config file. Smell names go through core.ParseDataSmellType and
// threshold values are coerced to float64.
func ConfigFromMaps(disabled []string, thresholds map[string]any) (*Config, error) {
	cfg := NewConfig()
	for _, name := range disabled {
		st, ok := core.ParseDataSmellType(name)
		if !ok {
			return nil, &core.UnknownSmellError{Name: name}
		}
		cfg.Disable(st)
	}
	for name, raw := range thresholds {
		st, ok := core.ParseDataSmellType(name)
		if !ok {
			return nil, &core.UnknownSmellError{Name: name}
		}
		mostly, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, &core.ConfigurationError{
				Key:    "thresholds." + name,
				Reason: fmt.Sprintf("not a number: %v", raw),
			}
		}
		if err := validateMostly(st, mostly); err != nil {
			return nil, err
		}
		cfg.SetMostly(st, mostly)
	}
	return cfg, nil
}
