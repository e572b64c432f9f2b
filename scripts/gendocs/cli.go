package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/datasmell/internal/cli"
)

// generateCLIDocs writes an index page plus one page per visible command.
// Subcommands get their own page named after the full command path.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), cliIndex(root), 0600); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range visibleCommands(root) {
		if err := writeCommandPages(cmd, outDir); err != nil {
			return err
		}
	}
	return nil
}

func writeCommandPages(cmd *cobra.Command, outDir string) error {
	name := pageName(cmd)
	if err := os.WriteFile(filepath.Join(outDir, name+".md"), commandPage(cmd), 0600); err != nil {
		return fmt.Errorf("failed to write page for %s: %w", cmd.CommandPath(), err)
	}
	log.Printf("  Generated %s.md", name)

	for _, sub := range visibleCommands(cmd) {
		if err := writeCommandPages(sub, outDir); err != nil {
			return err
		}
	}
	return nil
}

func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if c.Hidden || c.Name() == "help" || strings.HasPrefix(c.Name(), "__") {
			continue
		}
		out = append(out, c)
	}
	return out
}

// pageName is the command path without the binary name, joined by dashes.
func pageName(cmd *cobra.Command) string {
	parts := strings.Fields(cmd.CommandPath())
	return strings.Join(parts[1:], "-")
}

func pageLink(cmd *cobra.Command) string {
	return fmt.Sprintf("[%s](/cli/%s)", InlineCode(strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")), pageName(cmd))
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for datasmell")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("datasmell checks tabular datasets for data smells: values that are technically valid but hint at quality problems. " +
		"The CLI runs detection on files, keeps a history of runs and serves the same engine over HTTP.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/datasmell/cmd/datasmell@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(root) {
		rows = append(rows, []string{pageLink(cmd), cleanDescription(cmd.Short)})
		for _, sub := range visibleCommands(cmd) {
			rows = append(rows, []string{pageLink(sub), cleanDescription(sub.Short)})
		}
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration key can be set through the environment with the `DATASMELL_` prefix. " +
		"Nested keys use a double underscore. Flags take precedence over the environment, which takes precedence over `datasmell.yaml`.")
	w.Table([]string{"Variable", "Key"}, [][]string{
		{InlineCode("DATASMELL_STATE_PATH"), InlineCode("state_path")},
		{InlineCode("DATASMELL_OUTPUT"), InlineCode("output")},
		{InlineCode("DATASMELL_WORKERS"), InlineCode("workers")},
		{InlineCode("DATASMELL_DISABLED"), InlineCode("disabled")},
		{InlineCode("DATASMELL_SERVER__ADDR"), InlineCode("server.addr")},
	})

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "No failing checks"},
		{InlineCode("1"), "Smells found, or an error (check stderr for details)"},
	})

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.CommandPath(), cleanDescription(cmd.Short))
	w.GeneratedMarker()

	w.Header(1, cmd.CommandPath())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if cmd.HasAvailableSubCommands() && !cmd.Runnable() {
		useLine = cmd.CommandPath() + " <subcommand> [options]"
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Paragraph(Bold("Aliases") + ": " + strings.Join(aliases, ", "))
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	var related []string
	if parent := cmd.Parent(); parent != nil && parent != cmd.Root() {
		related = append(related, pageLink(parent))
	}
	for _, sub := range visibleCommands(cmd) {
		related = append(related, pageLink(sub)+": "+cleanDescription(sub.Short))
	}
	if len(related) > 0 {
		w.Header(2, "See Also")
		w.BulletList(related)
	}

	return w.Bytes()
}

func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		rows = append(rows, []string{InlineCode(name), f.Value.Type(), flagDefault(f), cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Type", "Default", "Description"}, rows)
}

func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "[]", "0", "false", "0s":
		return ""
	}
	return InlineCode(f.DefValue)
}

// cleanExample removes the common leading indentation of example text.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.TrimSpace(example)
	}

	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
