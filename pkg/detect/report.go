package detect

import (
	"time"

	"github.com/leapstack-labs/datasmell/pkg/core"
)

// Report is the outcome of one Detect call.
type Report struct {
	DatasetID  string                   `json:"dataset_id"`
	Results    []core.DetectionResult   `json:"results"`
	Statistics core.DetectionStatistics `json:"statistics"`
	StartedAt  time.Time                `json:"started_at"`
	Duration   time.Duration            `json:"duration_ns"`
}

// ColumnGroup holds the results of one column.
type ColumnGroup struct {
	Column  string                 `json:"column"`
	Results []core.DetectionResult `json:"results"`
}

// Failures counts the failed results of the group.
func (g ColumnGroup) Failures() int {
	n := 0
	for _, r := range g.Results {
		if !r.Success {
			n++
		}
	}
	return n
}

// ByColumn groups results by column, keeping first-seen column order.
func (r *Report) ByColumn() []ColumnGroup {
	var groups []ColumnGroup
	index := make(map[string]int)
	for _, res := range r.Results {
		i, ok := index[res.ColumnName]
		if !ok {
			i = len(groups)
			index[res.ColumnName] = i
			groups = append(groups, ColumnGroup{Column: res.ColumnName})
		}
		groups[i].Results = append(groups[i].Results, res)
	}
	return groups
}

// Failures returns the results whose column exceeded its threshold.
func (r *Report) Failures() []core.DetectionResult {
	var out []core.DetectionResult
	for _, res := range r.Results {
		if !res.Success {
			out = append(out, res)
		}
	}
	return out
}

// HasFailures reports whether any result failed.
func (r *Report) HasFailures() bool {
	return r.Statistics.Failures > 0
}

// ByCategory returns the results of smells in category c.
func (r *Report) ByCategory(c core.Category) []core.DetectionResult {
	var out []core.DetectionResult
	for _, res := range r.Results {
		if res.SmellType.Category() == c {
			out = append(out, res)
		}
	}
	return out
}
