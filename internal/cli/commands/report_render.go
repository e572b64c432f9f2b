package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/datasmell/internal/cli/output"
	"github.com/leapstack-labs/datasmell/internal/state"
	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/detect"
)

// maxShownSamples bounds the unexpected values printed per result.
const maxShownSamples = 5

// reportOptions controls report rendering.
type reportOptions struct {
	FailuresOnly bool
}

// ReportJSONOutput is the JSON output structure of a detection report.
type ReportJSONOutput struct {
	Run        *state.Run               `json:"run,omitempty"`
	DatasetID  string                   `json:"dataset_id"`
	Statistics core.DetectionStatistics `json:"statistics"`
	Columns    []detect.ColumnGroup     `json:"columns"`
}

// renderReport writes a report in the renderer's mode. run may be nil when
// the report was not stored.
func renderReport(r *output.Renderer, run *state.Run, report *detect.Report, opts reportOptions) error {
	groups := filterGroups(report.ByColumn(), opts.FailuresOnly)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if groups == nil {
			groups = []detect.ColumnGroup{}
		}
		return r.JSON(ReportJSONOutput{
			Run:        run,
			DatasetID:  report.DatasetID,
			Statistics: report.Statistics,
			Columns:    groups,
		})
	case output.ModeMarkdown:
		renderReportMarkdown(r, run, report, groups)
	default:
		renderReportText(r, run, report, groups)
	}
	return nil
}

func filterGroups(groups []detect.ColumnGroup, failuresOnly bool) []detect.ColumnGroup {
	if !failuresOnly {
		return groups
	}
	var out []detect.ColumnGroup
	for _, g := range groups {
		var failed []core.DetectionResult
		for _, res := range g.Results {
			if !res.Success {
				failed = append(failed, res)
			}
		}
		if len(failed) > 0 {
			out = append(out, detect.ColumnGroup{Column: g.Column, Results: failed})
		}
	}
	return out
}

func renderReportText(r *output.Renderer, run *state.Run, report *detect.Report, groups []detect.ColumnGroup) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Data smells: " + report.DatasetID))
	if run != nil {
		r.Println(styles.Muted.Render("Run " + run.ID))
	}
	r.Println("")

	for _, g := range groups {
		r.Println(styles.Header2.Render(g.Column))
		for _, res := range g.Results {
			mark := styles.Success.Render("✓")
			if !res.Success {
				mark = styles.Error.Render("✗")
			}
			r.Printf("  %s %-34s %s\n", mark, res.SmellType.Name(), styles.Muted.Render(ratio(res)))
			if !res.Success && len(res.UnexpectedValues) > 0 {
				r.Println(styles.Muted.Render("      e.g. " + formatSamples(res.UnexpectedValues)))
			}
		}
		r.Println("")
	}

	r.Println(summaryLine(report))
	r.Println("")
}

func renderReportMarkdown(r *output.Renderer, run *state.Run, report *detect.Report, groups []detect.ColumnGroup) {
	r.Printf("# Data smells: %s\n\n", report.DatasetID)
	if run != nil {
		r.Printf("Run `%s`\n\n", run.ID)
	}

	rows := make([][]string, 0, len(report.Results))
	for _, g := range groups {
		for _, res := range g.Results {
			status := "ok"
			if !res.Success {
				status = "**smelly**"
			}
			rows = append(rows, []string{
				g.Column,
				res.SmellType.Name(),
				status,
				ratio(res),
				formatSamples(res.UnexpectedValues),
			})
		}
	}
	if len(rows) > 0 {
		r.Table([]string{"Column", "Smell", "Status", "Unexpected", "Examples"}, rows)
		r.Println("")
	}
	r.Println(summaryLine(report))
}

func ratio(res core.DetectionResult) string {
	return fmt.Sprintf("%d/%d (%.1f%%, mostly %s)",
		res.UnexpectedCount, res.EvaluatedCount, res.UnexpectedPercent(),
		strconv.FormatFloat(res.Mostly, 'f', -1, 64))
}

func summaryLine(report *detect.Report) string {
	s := report.Statistics
	return fmt.Sprintf("%d columns, %d checks, %d failing, %d flagged values",
		s.ColumnsEvaluated, s.ChecksRun, s.Failures, s.SmellsFound)
}

// formatSamples quotes strings so that leading and trailing spaces stay visible.
func formatSamples(values []any) string {
	shown := values[:min(len(values), maxShownSamples)]
	parts := make([]string, len(shown))
	for i, v := range shown {
		if s, ok := v.(string); ok {
			parts[i] = strconv.Quote(s)
		} else {
			parts[i] = core.FormatValue(v)
		}
	}
	out := strings.Join(parts, ", ")
	if len(values) > len(shown) {
		out += ", ..."
	}
	return out
}
