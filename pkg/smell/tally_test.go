package smell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

func TestSucceeds(t *testing.T) {
	tests := []struct {
		name       string
		unexpected int
		evaluated  int
		mostly     float64
		want       bool
	}{
		{"nothing evaluated", 0, 0, 0.9, true},
		{"at threshold", 1, 10, 0.9, true},
		{"over threshold", 2, 10, 0.9, false},
		{"two of three with loose mostly", 2, 3, 0.1, true},
		{"two of three with half", 2, 3, 0.5, false},
		{"mostly zero always passes", 10, 10, 0, true},
		{"mostly one fails on any", 1, 100, 1, false},
		{"mostly one clean", 0, 100, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, smell.Succeeds(tt.unexpected, tt.evaluated, tt.mostly))
		})
	}
}

func TestTally_Result(t *testing.T) {
	tally := smell.NewTally(0.9, 2)
	tally.Observe("a ", true)
	tally.Observe("b", false)
	tally.Observe(" c", true)
	tally.Observe("d  e", true)
	tally.Failed()
	tally.Skipped()

	r := tally.Result("name", core.Spacing)
	assert.Equal(t, "name", r.ColumnName)
	assert.Equal(t, core.Spacing, r.SmellType)
	assert.Equal(t, 3, r.UnexpectedCount)
	assert.Equal(t, 5, r.EvaluatedCount)
	assert.Equal(t, 1, r.MissingCount)
	assert.Equal(t, 1, r.ErrorCount)
	assert.Equal(t, []any{"a ", " c"}, r.UnexpectedValues, "sample is capped and keeps first-seen order")
	assert.False(t, r.Success)
	assert.InDelta(t, 0.9, r.Mostly, 1e-12)
}

func TestTally_SampleSizeDoesNotAffectSuccess(t *testing.T) {
	values := []bool{true, false, false, false}
	for _, size := range []int{0, 1, 20} {
		tally := smell.NewTally(0.5, size)
		for i, smelly := range values {
			tally.Observe(i, smelly)
		}
		r := tally.Result("c", core.DummyValue)
		assert.True(t, r.Success)
		assert.Equal(t, 1, r.UnexpectedCount)
		assert.LessOrEqual(t, len(r.UnexpectedValues), size)
	}
}

func TestTally_Empty(t *testing.T) {
	r := smell.NewTally(1, -1).Result("c", core.Spacing)
	assert.True(t, r.Success)
	require.NotNil(t, r.UnexpectedValues)
	assert.Empty(t, r.UnexpectedValues)
}

func TestConfigFromMaps(t *testing.T) {
	cfg, err := smell.ConfigFromMaps(
		[]string{"casing"},
		map[string]any{"dummy_value": "0.25", "Spacing Smell": 1},
	)
	require.NoError(t, err)
	assert.True(t, cfg.IsDisabled(core.Casing))
	assert.InDelta(t, 0.25, cfg.GetMostly(core.DummyValue, 0), 1e-12)
	assert.InDelta(t, 1.0, cfg.GetMostly(core.Spacing, 0), 1e-12)
	assert.InDelta(t, 0.7, cfg.GetMostly(core.Tagging, 0.7), 1e-12)

	_, err = smell.ConfigFromMaps(nil, map[string]any{"spacing": "lots"})
	assert.ErrorIs(t, err, core.ErrConfiguration)

	_, err = smell.ConfigFromMaps(nil, map[string]any{"spacing": 2})
	assert.ErrorIs(t, err, core.ErrConfiguration)

	_, err = smell.ConfigFromMaps([]string{"nope"}, nil)
	assert.ErrorIs(t, err, core.ErrUnknownSmell)
}
