package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datasmell/internal/cli/output"
	"github.com/leapstack-labs/datasmell/internal/state"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored detection runs",
		Long: `List detection runs stored in the state database, most recent first.

Use 'datasmell show <run-id>' to display the report of a run.`,
		Example: `  # Last 20 runs
  datasmell history

  # Every run as JSON
  datasmell history --limit 0 -o json

  # Remove a run
  datasmell history rm 3f1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	cmd.AddCommand(newHistoryRemoveCommand())
	return cmd
}

func newHistoryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <run-id>...",
		Aliases: []string{"delete"},
		Short:   "Delete stored runs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := commandContext(cmd)
			store, err := cmdCtx.OpenStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			for _, id := range args {
				if err := store.DeleteRun(ctx, id); err != nil {
					return err
				}
				cmdCtx.Renderer.Printf("Deleted run %s\n", id)
			}
			return nil
		},
	}
}

func runHistory(cmd *cobra.Command, limit int) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := commandContext(cmd)
	store, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	return renderRuns(cmdCtx.Renderer, runs)
}

func renderRuns(r *output.Renderer, runs []*state.Run) error {
	if r.EffectiveMode() == output.ModeJSON {
		if runs == nil {
			runs = []*state.Run{}
		}
		return r.JSON(runs)
	}
	if len(runs) == 0 {
		r.Println("No runs stored yet. Run 'datasmell detect <file>' first.")
		return nil
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("# Detection runs")
	} else {
		r.Println(r.Styles().Header1.Render("Detection runs"))
	}
	r.Println("")

	rows := make([][]string, len(runs))
	for i, run := range runs {
		rows[i] = []string{
			run.ID,
			run.DatasetID,
			run.StartedAt.Local().Format(time.DateTime),
			strconv.Itoa(run.Rows),
			strconv.Itoa(run.Statistics.ChecksRun),
			strconv.Itoa(run.Statistics.Failures),
			run.Duration.Round(time.Millisecond).String(),
		}
	}
	r.Table([]string{"Run", "Dataset", "Started", "Rows", "Checks", "Failing", "Duration"}, rows)
	r.Println("")
	r.Println(fmt.Sprintf("%d runs", len(runs)))
	return nil
}

// commandContext returns the command's context, or a background context
// for commands executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
