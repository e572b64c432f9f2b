package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datasmell/internal/state"
	"github.com/leapstack-labs/datasmell/pkg/detect"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &DetectOptions{}
	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Re-run detection whenever dataset files change",
		Long: `Run detection once, then again each time one of the files is written.

Changes are debounced so an editor or export writing in several steps
triggers one run. Detection errors are reported and watching continues.`,
		Example: `  datasmell watch exports/customers.csv
  datasmell watch a.csv b.parquet --debounce 2s --failures-only`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringSlice("smell", nil, "Smell IDs to check (default: all applicable)")
	cmd.Flags().StringSliceVar(&opts.Columns, "column", nil, "Restrict to columns, as name or name:smell")
	cmd.Flags().Duration("debounce", 0, "Quiet period before re-running (default 500ms)")
	cmd.Flags().Bool("no-save", false, "Do not store results in the state database")
	cmd.Flags().BoolVar(&opts.FailuresOnly, "failures-only", false, "Only show failing checks")
	_ = cmd.RegisterFlagCompletionFunc("smell", completeSmellIDs)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	cmdCtx := NewCommandContext(cmd)
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	paths := make([]string, len(args))
	for i, p := range args {
		if paths[i], err = filepath.Abs(p); err != nil {
			return err
		}
	}

	run := func(path string) {
		if _, err := detectFile(ctx, cmdCtx, eng, store, path, req, opts); err != nil {
			cmdCtx.Renderer.Warn(err.Error())
		}
	}
	for _, p := range paths {
		run(p)
	}

	cmdCtx.Renderer.Println(cmdCtx.Renderer.Styles().Muted.Render("Watching for changes (Ctrl+C to stop)"))
	return watchFiles(ctx, paths, cmdCtx.Cfg.Watch.Debounce, cmdCtx.Logger, run)
}

// watchFiles calls onChange for every path written since the last quiet
// period of debounce. It returns when ctx is done.
func watchFiles(ctx context.Context, paths []string, debounce time.Duration, logger *slog.Logger, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories: editors often replace files by renaming.
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if slices.Contains(dirs, dir) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs = append(dirs, dir)
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending []string
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !slices.Contains(paths, name) {
				continue
			}
			logger.Debug("dataset changed", slog.String("path", name), slog.String("op", event.Op.String()))
			if !slices.Contains(pending, name) {
				pending = append(pending, name)
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			for _, p := range pending {
				if _, err := os.Stat(p); err != nil {
					continue
				}
				onChange(p)
			}
			pending = nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}
