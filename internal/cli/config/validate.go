package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/detect"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

var validOutputs = []string{"", "auto", "text", "markdown", "md", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(validOutputs, strings.ToLower(c.OutputFormat)) {
		return &core.ConfigurationError{Key: "output", Reason: fmt.Sprintf("unknown output format %q (auto|text|markdown|json)", c.OutputFormat)}
	}
	if c.Workers < 0 {
		return &core.ConfigurationError{Key: "workers", Reason: "must not be negative"}
	}
	if c.SampleSize < 0 {
		return &core.ConfigurationError{Key: "sample_size", Reason: "must not be negative"}
	}
	if c.MaxRows < 0 {
		return &core.ConfigurationError{Key: "max_rows", Reason: "must not be negative"}
	}
	if _, err := c.SelectedSmells(); err != nil {
		return err
	}
	if _, err := c.SmellConfig(); err != nil {
		return err
	}
	if c.Server.ReadHeaderTimeout < 0 {
		return &core.ConfigurationError{Key: "server.read_header_timeout", Reason: "must not be negative"}
	}
	if c.Watch.Debounce < 0 {
		return &core.ConfigurationError{Key: "watch.debounce", Reason: "must not be negative"}
	}
	return nil
}

// SelectedSmells parses the smells setting.
func (c *Config) SelectedSmells() ([]core.DataSmellType, error) {
	return detect.ParseSmells(c.Smells)
}

// SmellConfig converts disabled and thresholds into a registry configuration.
func (c *Config) SmellConfig() (*smell.Config, error) {
	return smell.ConfigFromMaps(c.Disabled, c.Thresholds)
}
