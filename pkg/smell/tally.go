package smell

import "github.com/leapstack-labs/datasmell/pkg/core"

// DefaultSampleSize bounds the unexpected values kept per result.
const DefaultSampleSize = 20

// Succeeds applies the threshold rule. A column passes when the share of
// expected values among evaluated values is at least mostly, which is the
// same as unexpected/evaluated <= 1-mostly. Nothing evaluated passes.
func Succeeds(unexpected, evaluated int, mostly float64) bool {
	if evaluated == 0 {
		return true
	}
	return float64(evaluated-unexpected)/float64(evaluated) >= mostly
}

// Tally folds per-value verdicts for one (column, smell) pass.
type Tally struct {
	mostly     float64
	sampleSize int

	evaluated  int
	unexpected int
	missing    int
	errors     int
	sample     []any
}

// NewTally creates a tally. A negative sampleSize falls back to DefaultSampleSize.
func NewTally(mostly float64, sampleSize int) *Tally {
	if sampleSize < 0 {
		sampleSize = DefaultSampleSize
	}
	return &Tally{mostly: mostly, sampleSize: sampleSize}
}

// Observe records the verdict for an evaluated value.
func (t *Tally) Observe(value any, smelly bool) {
	t.evaluated++
	if !smelly {
		return
	}
	t.unexpected++
	if len(t.sample) < t.sampleSize {
		t.sample = append(t.sample, value)
	}
}

// Failed records a value whose evaluation errored. It counts as clean.
func (t *Tally) Failed() {
	t.evaluated++
	t.errors++
}

// Skipped records a missing value the check did not see.
func (t *Tally) Skipped() {
	t.missing++
}

// Result produces the detection result.
func (t *Tally) Result(column string, st core.DataSmellType) core.DetectionResult {
	sample := t.sample
	if sample == nil {
		sample = []any{}
	}
	return core.DetectionResult{
		ColumnName:       column,
		SmellType:        st,
		Success:          Succeeds(t.unexpected, t.evaluated, t.mostly),
		UnexpectedValues: sample,
		UnexpectedCount:  t.unexpected,
		EvaluatedCount:   t.evaluated,
		MissingCount:     t.missing,
		ErrorCount:       t.errors,
		Mostly:           t.mostly,
	}
}
