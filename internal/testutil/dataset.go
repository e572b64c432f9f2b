package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datasmell/pkg/core"
)

// NewDataset builds a dataset from columns, failing the test on error.
func NewDataset(t testing.TB, id string, columns ...*core.Column) *core.Dataset {
	t.Helper()
	ds, err := core.NewDataset(id, columns...)
	require.NoError(t, err)
	return ds
}

// CustomersDataset returns a small dataset touching every default check.
func CustomersDataset(t testing.TB) *core.Dataset {
	t.Helper()
	return NewDataset(t, "customers.csv",
		core.NewColumn("name", core.TypeString, []any{"Alice", " Bob", "Carol  Ann", "dave", nil}),
		core.NewColumn("signup", core.TypeString, []any{"2021-04-01", "1901-01-01", "2022-13-40", "2020-02-29", ""}),
		core.NewColumn("code", core.TypeString, []any{"UNK", "N/A", "apple"}),
		core.NewColumn("balance", core.TypeFloat, []any{1.5, 2.25, 3.125, nil}),
		core.NewColumn("visits", core.TypeInt, []any{int64(1), int64(999), int64(3)}),
		core.NewColumn("active", core.TypeBoolean, []any{true, false, true}),
	)
}
