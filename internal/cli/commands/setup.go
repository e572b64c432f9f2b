// Package commands implements the datasmell CLI subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datasmell/internal/cli/config"
	"github.com/leapstack-labs/datasmell/internal/cli/output"
	"github.com/leapstack-labs/datasmell/internal/loader"
	"github.com/leapstack-labs/datasmell/internal/state"
	"github.com/leapstack-labs/datasmell/pkg/detect"
	"github.com/leapstack-labs/datasmell/pkg/smell"
	_ "github.com/leapstack-labs/datasmell/pkg/smell/checks" // register checks
)

// ErrSmellsFound is returned by commands that found failing smell results,
// so the process exits non-zero.
var ErrSmellsFound = errors.New("data smells found")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context of a command from its loaded config.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// getConfig returns the loaded configuration, or defaults when nothing was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// Registry builds the check registry with configured thresholds and disabled smells.
func (c *CommandContext) Registry() (*smell.Registry, error) {
	sc, err := c.Cfg.SmellConfig()
	if err != nil {
		return nil, err
	}
	return smell.Clone(sc)
}

// Engine builds a detection engine from the configuration.
func (c *CommandContext) Engine() (*detect.Engine, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	opts := []detect.Option{
		detect.WithWorkers(c.Cfg.Workers),
		detect.WithLogger(c.Logger),
	}
	if c.Cfg.SampleSize > 0 {
		opts = append(opts, detect.WithSampleSize(c.Cfg.SampleSize))
	}
	return detect.New(reg, opts...), nil
}

// Request builds the detection request of the configured smell selection.
func (c *CommandContext) Request() (detect.Request, error) {
	smells, err := c.Cfg.SelectedSmells()
	if err != nil {
		return detect.Request{}, err
	}
	return detect.Request{Smells: smells}, nil
}

// LoaderOptions returns dataset loading options.
func (c *CommandContext) LoaderOptions() loader.Options {
	return loader.Options{
		Logger:           c.Logger,
		KeepIndexColumns: c.Cfg.KeepIndexColumns,
		MaxRows:          c.Cfg.MaxRows,
	}
}

// OpenStore opens the state database, creating its directory.
func (c *CommandContext) OpenStore(ctx context.Context) (*state.SQLiteStore, error) {
	if dir := filepath.Dir(c.Cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(ctx, c.Cfg.StatePath); err != nil {
		return nil, err
	}
	return store, nil
}
