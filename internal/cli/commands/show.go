package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datasmell/internal/state"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var failuresOnly bool
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the report of a stored run",
		Example: `  datasmell show 3f1c2a9e-...
  datasmell show 3f1c2a9e-... --failures-only -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := commandContext(cmd)
			store, err := cmdCtx.OpenStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			run, report, err := state.LoadReport(ctx, store, args[0])
			if err != nil {
				return err
			}
			return renderReport(cmdCtx.Renderer, run, report, reportOptions{FailuresOnly: failuresOnly})
		},
	}
	cmd.Flags().BoolVar(&failuresOnly, "failures-only", false, "Only show failing checks")
	return cmd
}
