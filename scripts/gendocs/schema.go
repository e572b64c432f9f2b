package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/datasmell/internal/cli/config"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "detection", "output", "server", "watch"
}

// getConfigSchema returns the configuration schema definition.
// This follows internal/cli/config/types.go.
func getConfigSchema() []ConfigField {
	def := config.Default()
	return []ConfigField{
		{Name: "state_path", Type: "string", Default: def.StatePath, Description: "State database path, relative to the config file", Category: "output"},
		{Name: "no_save", Type: "bool", Default: "false", Description: "Do not store detection runs", Category: "output"},
		{Name: "output", Type: "string", Default: def.OutputFormat, Description: "Output format: auto, text, markdown, json", Category: "output"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Debug logging on stderr", Category: "output"},

		{Name: "smells", Type: "[]string", Description: "Smell IDs to check; empty checks every applicable smell", Category: "detection"},
		{Name: "disabled", Type: "[]string", Description: "Smell IDs that are never checked", Category: "detection"},
		{Name: "thresholds", Type: "map[string]float", Description: "Replacement mostly per smell ID, in [0, 1]", Category: "detection"},
		{Name: "workers", Type: "int", Default: "0", Description: "Checks run in parallel; 0 or 1 runs sequentially", Category: "detection"},
		{Name: "sample_size", Type: "int", Default: "20", Description: "Unexpected values kept per result", Category: "detection"},
		{Name: "max_rows", Type: "int", Default: "0", Description: "Rows read per file; 0 reads all", Category: "detection"},
		{Name: "keep_index_columns", Type: "bool", Default: "false", Description: "Keep a leading unnamed index column", Category: "detection"},

		{Name: "server.addr", Type: "string", Default: def.Server.Addr, Description: "API listen address", Category: "server"},
		{Name: "server.read_header_timeout", Type: "duration", Default: def.Server.ReadHeaderTimeout.String(), Description: "Read header timeout", Category: "server"},
		{Name: "server.shutdown_timeout", Type: "duration", Default: def.Server.ShutdownTimeout.String(), Description: "Graceful shutdown timeout", Category: "server"},
		{Name: "server.max_upload_bytes", Type: "int", Default: fmt.Sprint(def.Server.MaxUploadBytes), Description: "Largest accepted request body", Category: "server"},
		{Name: "server.allowed_origins", Type: "[]string", Description: "CORS origins; empty disables CORS", Category: "server"},

		{Name: "watch.debounce", Type: "duration", Default: def.Watch.Debounce.String(), Description: "Quiet period before watch re-runs detection", Category: "watch"},
	}
}

// generateSchemaDocs generates the configuration reference page.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "datasmell configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("datasmell reads `datasmell.yaml` from the working directory or the nearest parent. " +
		"Every key can also be set with a `" + config.EnvPrefix + "` environment variable; nested keys use a double " +
		"underscore, e.g. `DATASMELL_SERVER__ADDR`. Flags override environment variables, which override the file.")

	sections := []struct{ category, title string }{
		{"detection", "Detection"},
		{"output", "Output and State"},
		{"server", "API Server"},
		{"watch", "Watch"},
	}
	fields := getConfigSchema()
	for _, s := range sections {
		w.Header(2, s.title)
		var rows [][]string
		for _, f := range fields {
			if f.Category != s.category {
				continue
			}
			defVal := f.Default
			if defVal == "" {
				defVal = "-"
			} else {
				defVal = InlineCode(defVal)
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, f.Description})
		}
		w.Table([]string{"Field", "Type", "Default", "Description"}, rows)
	}

	w.Header(2, "Example")
	w.CodeBlock("yaml", `state_path: .datasmell/state.db
workers: 4
disabled: [long-data-value]
thresholds:
  spacing: 0.95
server:
  addr: 127.0.0.1:8484`)

	log.Printf("  Generated configuration.md")
	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
