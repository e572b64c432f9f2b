package core

// DetectionResult is the outcome of one check applied to one column.
//
// Invariants:
//   - UnexpectedCount <= EvaluatedCount
//   - Success == (UnexpectedCount/EvaluatedCount <= 1 - Mostly), true when EvaluatedCount == 0
//   - len(UnexpectedValues) <= min(UnexpectedCount, sample size)
type DetectionResult struct {
	ColumnName       string        `json:"column"`
	SmellType        DataSmellType `json:"smell_type"`
	Success          bool          `json:"success"`
	UnexpectedValues []any         `json:"unexpected_values"`
	UnexpectedCount  int           `json:"unexpected_count"`
	EvaluatedCount   int           `json:"evaluated_count"`
	MissingCount     int           `json:"missing_count"`
	ErrorCount       int           `json:"error_count"`
	Mostly           float64       `json:"mostly"`
}

// UnexpectedPercent returns the share of evaluated values flagged, in percent.
func (r DetectionResult) UnexpectedPercent() float64 {
	if r.EvaluatedCount == 0 {
		return 0
	}
	return float64(r.UnexpectedCount) / float64(r.EvaluatedCount) * 100
}

// Smelly reports whether the column exceeded the tolerated share of flagged values.
func (r DetectionResult) Smelly() bool {
	return !r.Success
}

// DetectionStatistics summarises a detection run.
type DetectionStatistics struct {
	ColumnsEvaluated int `json:"columns_evaluated"`
	ChecksRun        int `json:"checks_run"`
	SmellsFound      int `json:"smells_found"`
	Failures         int `json:"failures"`
}

// Summarize computes statistics for a result set over the given number of columns.
func Summarize(columns int, results []DetectionResult) DetectionStatistics {
	stats := DetectionStatistics{ColumnsEvaluated: columns, ChecksRun: len(results)}
	for _, r := range results {
		stats.SmellsFound += r.UnexpectedCount
		if !r.Success {
			stats.Failures++
		}
	}
	return stats
}
