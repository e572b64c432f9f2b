package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datasmell/internal/loader"
	"github.com/leapstack-labs/datasmell/internal/state"
	"github.com/leapstack-labs/datasmell/pkg/detect"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// DetectOptions holds options for the detect command.
type DetectOptions struct {
	Columns      []string // column or column:smell targets
	FailuresOnly bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}
	cmd := &cobra.Command{
		Use:   "detect <file>...",
		Short: "Detect data smells in dataset files",
		Long: `Load each dataset file and run every applicable smell check on every column.

Supported files: CSV, TSV, Parquet, JSON records and YAML dataset documents.
Results are stored in the state database unless --no-save is given.
The command exits non-zero when any check fails.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check a CSV file
  datasmell detect customers.csv

  # Only look for spacing and dummy values
  datasmell detect customers.csv --smell spacing,dummy-value

  # Check one column, or one smell on one column
  datasmell detect customers.csv --column email --column signup:suspect-date-value

  # Machine-readable output without storing the run
  datasmell detect customers.csv -o json --no-save`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringSlice("smell", nil, "Smell IDs to check (default: all applicable)")
	cmd.Flags().StringSliceVar(&opts.Columns, "column", nil, "Restrict to columns, as name or name:smell")
	cmd.Flags().StringSlice("disable", nil, "Smell IDs to disable")
	cmd.Flags().Int("workers", 0, "Checks run in parallel (0 or 1 runs sequentially)")
	cmd.Flags().Int("sample-size", 0, "Unexpected values kept per result (default 20)")
	cmd.Flags().Int("max-rows", 0, "Read at most this many rows per file")
	cmd.Flags().Bool("keep-index", false, "Keep a leading unnamed index column")
	cmd.Flags().Bool("no-save", false, "Do not store results in the state database")
	cmd.Flags().BoolVar(&opts.FailuresOnly, "failures-only", false, "Only show failing checks")

	_ = cmd.RegisterFlagCompletionFunc("smell", completeSmellIDs)
	_ = cmd.RegisterFlagCompletionFunc("disable", completeSmellIDs)

	return cmd
}

func runDetect(cmd *cobra.Command, paths []string, opts *DetectOptions) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := commandContext(cmd)

	eng, err := cmdCtx.Engine()
	if err != nil {
		return err
	}
	req, err := cmdCtx.Request()
	if err != nil {
		return err
	}
	if req.Columns, req.Targets, err = detect.ParseSelection(opts.Columns); err != nil {
		return err
	}

	var store state.Store
	if !cmdCtx.Cfg.NoSave {
		s, err := cmdCtx.OpenStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		store = s
	}

	anyFailures := false
	for _, path := range paths {
		failed, err := detectFile(ctx, cmdCtx, eng, store, path, req, opts)
		if err != nil {
			return err
		}
		anyFailures = anyFailures || failed
	}

	if anyFailures {
		return ErrSmellsFound
	}
	return nil
}

// detectFile runs one file through the engine, stores and renders the report.
func detectFile(ctx context.Context, cmdCtx *CommandContext, eng *detect.Engine, store state.Store,
	path string, req detect.Request, opts *DetectOptions) (bool, error) {
	ds, err := loader.Load(ctx, path, cmdCtx.LoaderOptions())
	if err != nil {
		return false, err
	}

	report, err := eng.DetectContext(ctx, ds, req)
	if err != nil {
		return false, err
	}

	var run *state.Run
	if store != nil {
		if run, err = store.SaveReport(ctx, ds, report, path); err != nil {
			return false, fmt.Errorf("failed to save run: %w", err)
		}
		cmdCtx.Logger.Debug("run stored", slog.String("id", run.ID), slog.String("path", path))
	}

	if err := renderReport(cmdCtx.Renderer, run, report, reportOptions{FailuresOnly: opts.FailuresOnly}); err != nil {
		return false, err
	}
	return report.HasFailures(), nil
}

func completeSmellIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	ids := make([]string, 0)
	for _, st := range smell.Default().Types() {
		ids = append(ids, string(st))
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
