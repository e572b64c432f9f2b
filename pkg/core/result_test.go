package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/datasmell/pkg/core"
)

func TestDetectionResult_UnexpectedPercent(t *testing.T) {
	r := core.DetectionResult{UnexpectedCount: 1, EvaluatedCount: 4}
	assert.InDelta(t, 25.0, r.UnexpectedPercent(), 1e-9)

	empty := core.DetectionResult{Success: true}
	assert.Zero(t, empty.UnexpectedPercent())
	assert.False(t, empty.Smelly())
}

func TestSummarize(t *testing.T) {
	results := []core.DetectionResult{
		{ColumnName: "a", SmellType: core.Spacing, Success: true, UnexpectedCount: 1, EvaluatedCount: 10},
		{ColumnName: "a", SmellType: core.DummyValue, Success: false, UnexpectedCount: 5, EvaluatedCount: 10},
		{ColumnName: "b", SmellType: core.PrecisionInconsistency, Success: false, UnexpectedCount: 2, EvaluatedCount: 3},
	}

	stats := core.Summarize(2, results)
	assert.Equal(t, core.DetectionStatistics{
		ColumnsEvaluated: 2,
		ChecksRun:        3,
		SmellsFound:      8,
		Failures:         2,
	}, stats)
}

func TestErrors_IsAndMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "unknown smell",
			err:      &core.UnknownSmellError{Name: "foo", Available: []string{"spacing"}},
			sentinel: core.ErrUnknownSmell,
			contains: `unknown smell "foo"`,
		},
		{
			name: "unsupported type",
			err: &core.UnsupportedColumnTypeError{
				Column: "price", DataType: core.TypeFloat, SmellType: core.Spacing,
				Supported: []core.ColumnDataType{core.TypeString},
			},
			sentinel: core.ErrUnsupportedColumnType,
			contains: "supported: STRING",
		},
		{
			name:     "duplicate",
			err:      &core.DuplicateRegistrationError{SmellType: core.Spacing},
			sentinel: core.ErrDuplicateRegistration,
			contains: "already registered",
		},
		{
			name:     "configuration",
			err:      &core.ConfigurationError{Key: "mostly", Reason: "locked"},
			sentinel: core.ErrConfiguration,
			contains: "mostly: locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := errors.Join(errors.New("context"), tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}
