package smell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// counterCheck flags every value and counts calls, so tests can tell instances apart.
type counterCheck struct {
	calls int
}

func (c *counterCheck) Evaluate(_ any) (bool, error) {
	c.calls++
	return true, nil
}

func def(st core.DataSmellType, mostly float64, types ...core.ColumnDataType) smell.CheckDef {
	return smell.CheckDef{
		Metadata: smell.SmellMetadata{
			SmellType:      st,
			SupportedTypes: core.NewTypeSet(types...),
			Description:    "test check",
		},
		Mostly: mostly,
		New:    func() smell.Check { return &counterCheck{} },
	}
}

func testRegistry(t *testing.T) *smell.Registry {
	t.Helper()
	r := smell.NewRegistry()
	require.NoError(t, r.Register(def(core.Spacing, 0.9, core.TypeString)))
	require.NoError(t, r.Register(def(core.DummyValue, 0.1, core.TypeString, core.TypeInt, core.TypeFloat)))
	require.NoError(t, r.Register(def(core.PrecisionInconsistency, 0.95, core.TypeFloat)))
	return r
}

func TestRegistry_Register(t *testing.T) {
	r := testRegistry(t)
	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []core.DataSmellType{core.Spacing, core.DummyValue, core.PrecisionInconsistency}, r.Types())

	mostly, err := r.Mostly(core.PrecisionInconsistency)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, mostly, 1e-12)
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name     string
		def      smell.CheckDef
		sentinel error
	}{
		{"duplicate", def(core.Spacing, 0.5, core.TypeString), core.ErrDuplicateRegistration},
		{"empty supported types", def(core.Casing, 0.5), core.ErrConfiguration},
		{"mostly above one", def(core.Casing, 1.5, core.TypeString), core.ErrConfiguration},
		{"mostly below zero", def(core.Casing, -0.1, core.TypeString), core.ErrConfiguration},
		{"not in catalogue", def("made-up", 0.5, core.TypeString), core.ErrConfiguration},
		{"nil factory", smell.CheckDef{Metadata: def(core.Casing, 0.5, core.TypeString).Metadata, Mostly: 0.5}, core.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.def)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
	assert.Equal(t, 3, r.Count(), "failed registrations must not change the registry")
}

func TestRegistry_ApplicableChecks(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name     string
		dataType core.ColumnDataType
		want     []core.DataSmellType
	}{
		{"string", core.TypeString, []core.DataSmellType{core.Spacing, core.DummyValue}},
		{"float", core.TypeFloat, []core.DataSmellType{core.DummyValue, core.PrecisionInconsistency}},
		{"boolean has none", core.TypeBoolean, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := core.NewColumn("c", tt.dataType, nil)
			var got []core.DataSmellType
			for _, b := range r.ApplicableChecks(col) {
				got = append(got, b.SmellType())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_FreshInstancePerBinding(t *testing.T) {
	r := testRegistry(t)
	col := core.NewColumn("c", core.TypeString, nil)

	first, err := r.CheckFor(col, core.Spacing)
	require.NoError(t, err)
	second, err := r.CheckFor(col, core.Spacing)
	require.NoError(t, err)

	_, _ = first.Check.Evaluate("x")
	assert.Equal(t, 1, first.Check.(*counterCheck).calls)
	assert.Equal(t, 0, second.Check.(*counterCheck).calls)
}

func TestRegistry_TaxonomyIsSnapshot(t *testing.T) {
	r := testRegistry(t)

	tax := r.Taxonomy()
	assert.Len(t, tax.All(), 3)

	require.NoError(t, tax.Register(smell.SmellMetadata{
		SmellType:      core.Casing,
		SupportedTypes: core.NewTypeSet(core.TypeString),
	}))

	assert.Equal(t, 3, r.Count())
	_, err := r.Lookup(core.Casing)
	assert.ErrorIs(t, err, core.ErrUnknownSmell)

	col := core.NewColumn("c", core.TypeString, []any{"x"})
	assert.NotPanics(t, func() {
		bindings := r.ApplicableChecks(col)
		assert.Len(t, bindings, 2)
	})
}

func TestRegistry_CheckForErrors(t *testing.T) {
	r := testRegistry(t)
	col := core.NewColumn("price", core.TypeFloat, nil)

	_, err := r.CheckFor(col, core.Spacing)
	var unsupported *core.UnsupportedColumnTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "price", unsupported.Column)
	assert.Equal(t, []core.ColumnDataType{core.TypeString}, unsupported.Supported)

	_, err = r.CheckFor(col, core.Misspelling)
	var unknown *core.UnknownSmellError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "misspelling", unknown.Name)
	assert.Contains(t, unknown.Available, "spacing")
}

func TestRegistry_Resolve(t *testing.T) {
	r := testRegistry(t)
	require.NoError(t, r.Resolve([]core.DataSmellType{core.Spacing, core.DummyValue}))
	assert.ErrorIs(t, r.Resolve([]core.DataSmellType{core.Spacing, core.Tagging}), core.ErrUnknownSmell)
}

func TestRegistry_Clone(t *testing.T) {
	r := testRegistry(t)

	cfg := smell.NewConfig().
		Disable(core.Spacing).
		SetMostly(core.DummyValue, 0.5)

	clone, err := r.Clone(cfg)
	require.NoError(t, err)
	assert.Equal(t, []core.DataSmellType{core.DummyValue, core.PrecisionInconsistency}, clone.Types())

	mostly, err := clone.Mostly(core.DummyValue)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mostly, 1e-12)

	original, err := r.Mostly(core.DummyValue)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, original, 1e-12, "clone must not change the source registry")

	_, err = r.Clone(smell.NewConfig().SetMostly(core.Tagging, 0.5))
	assert.ErrorIs(t, err, core.ErrUnknownSmell)
}

func TestInfoFor(t *testing.T) {
	info := smell.InfoFor(def(core.DummyValue, 0.1, core.TypeFloat, core.TypeString))
	assert.Equal(t, "dummy-value", info.ID)
	assert.Equal(t, "Dummy Value Smell", info.Name)
	assert.Equal(t, "believability", info.Category)
	assert.Equal(t, []string{"STRING", "FLOAT"}, info.SupportedTypes)
}
