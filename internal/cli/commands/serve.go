package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datasmell/internal/server"
	"github.com/leapstack-labs/datasmell/internal/state"
)

// NewServeCommand creates the serve command.
func NewServeCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the detection API over HTTP",
		Long: `Start an HTTP server exposing smell detection and stored runs.

Endpoints:
  GET    /healthz              Liveness
  GET    /metrics              Prometheus metrics
  GET    /api/smells           Registered checks
  GET    /api/smells/{id}      One check
  POST   /api/detect           Detect smells in a JSON or YAML dataset document
  POST   /api/detect/upload    Detect smells in an uploaded file (multipart field "file")
  GET    /api/runs             Stored runs
  GET    /api/runs/{id}        A stored run with its report
  DELETE /api/runs/{id}        Delete a stored run`,
		Example: `  datasmell serve
  datasmell serve --addr :8484 --no-save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eng, err := cmdCtx.Engine()
			if err != nil {
				return err
			}

			cfg := server.Config{
				Addr:              cmdCtx.Cfg.Server.Addr,
				Version:           version,
				Engine:            eng,
				LoaderOptions:     cmdCtx.LoaderOptions(),
				ReadHeaderTimeout: cmdCtx.Cfg.Server.ReadHeaderTimeout,
				ShutdownTimeout:   cmdCtx.Cfg.Server.ShutdownTimeout,
				MaxUploadBytes:    cmdCtx.Cfg.Server.MaxUploadBytes,
				AllowedOrigins:    cmdCtx.Cfg.Server.AllowedOrigins,
				Logger:            cmdCtx.Logger,
			}
			if !cmdCtx.Cfg.NoSave {
				store, err := cmdCtx.OpenStore(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				cfg.Store = state.Store(store)
			}

			srv, err := server.New(cfg)
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Printf("Serving datasmell API on http://%s (Ctrl+C to stop)\n", cfg.Addr)
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8484)")
	cmd.Flags().Duration("read-timeout", 0, "Read header timeout")
	cmd.Flags().Bool("no-save", false, "Do not store runs; disables the runs endpoints")
	return cmd
}
