package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
	_ "github.com/leapstack-labs/datasmell/pkg/smell/checks"
)

// generateSmellDocs generates the smell catalogue page.
func generateSmellDocs(outDir string) error {
	log.Printf("Generating smell docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	infos := smell.Default().Infos()
	registered := make(map[string]smell.Info, len(infos))
	for _, info := range infos {
		registered[info.ID] = info
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Data Smells", "Catalogue of data smells and the checks datasmell runs")
	w.GeneratedMarker()

	w.Header(1, "Data Smells")
	w.Paragraph(fmt.Sprintf("The catalogue names %d data smells in %d categories. datasmell ships **%d checks**; "+
		"smells without a check are listed for completeness.", len(core.AllSmellTypes()), len(core.AllCategories()), len(infos)))

	w.Header(2, "Thresholds")
	w.Paragraph("A check succeeds on a column when the share of flagged values is at most `1 - mostly`. " +
		"Missing values are skipped. Thresholds can be changed in `datasmell.yaml`:")
	w.CodeBlock("yaml", `thresholds:
  spacing: 0.95        # tolerate at most 5% values with odd whitespace
disabled:
  - long-data-value`)

	for _, cat := range core.AllCategories() {
		w.Header(2, cat.Label())

		var rows [][]string
		var documented []smell.Info
		for _, st := range core.SmellTypesInCategory(cat) {
			info, ok := registered[string(st)]
			if !ok {
				rows = append(rows, []string{InlineCode(string(st)), st.Name(), "-", "-"})
				continue
			}
			rows = append(rows, []string{
				InlineCode(info.ID),
				info.Name,
				strings.Join(info.SupportedTypes, ", "),
				strconv.FormatFloat(info.Mostly, 'f', -1, 64),
			})
			documented = append(documented, info)
		}
		w.Table([]string{"ID", "Name", "Column types", "Default mostly"}, rows)

		for _, info := range documented {
			writeSmellDoc(w, info)
		}
	}

	log.Printf("  Generated smells.md")
	return os.WriteFile(filepath.Join(outDir, "smells.md"), w.Bytes(), 0600)
}

func writeSmellDoc(w *MarkdownWriter, info smell.Info) {
	w.Header(3, info.Name)
	w.BulletList([]string{
		Bold("ID") + ": " + InlineCode(info.ID),
		Bold("Column types") + ": " + strings.Join(info.SupportedTypes, ", "),
		Bold("Default mostly") + ": " + strconv.FormatFloat(info.Mostly, 'f', -1, 64),
	})
	if info.Description != "" {
		w.Paragraph(info.Description)
	}
}
