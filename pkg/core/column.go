package core

import (
	"fmt"
	"iter"
	"slices"
)

// Column is a named, typed sequence of raw values.
// Values may be nil, string, bool, any integer or float kind, or time.Time.
// A Column is immutable after construction.
type Column struct {
	name     string
	dataType ColumnDataType
	values   []any
}

// NewColumn creates a column. The value slice is copied.
func NewColumn(name string, dataType ColumnDataType, values []any) *Column {
	return &Column{
		name:     name,
		dataType: dataType,
		values:   slices.Clone(values),
	}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// DataType returns the declared data type.
func (c *Column) DataType() ColumnDataType { return c.dataType }

// Len returns the number of values.
func (c *Column) Len() int { return len(c.values) }

// Value returns the value at index i.
func (c *Column) Value(i int) any { return c.values[i] }

// Values iterates the values in order. The sequence can be consumed any number of times.
func (c *Column) Values() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, v := range c.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Dataset is an identified, ordered collection of uniquely named columns.
type Dataset struct {
	id      string
	columns []*Column
	index   map[string]int
}

// NewDataset creates a dataset. Column names must be unique.
func NewDataset(id string, columns ...*Column) (*Dataset, error) {
	ds := &Dataset{
		id:      id,
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		if col == nil {
			return nil, &ConfigurationError{Key: "columns", Reason: "nil column"}
		}
		if _, exists := ds.index[col.name]; exists {
			return nil, &ConfigurationError{
				Key:    "columns",
				Reason: fmt.Sprintf("duplicate column name %q", col.name),
			}
		}
		ds.index[col.name] = len(ds.columns)
		ds.columns = append(ds.columns, col)
	}
	return ds, nil
}

// ID returns the dataset identifier.
func (d *Dataset) ID() string { return d.id }

// Columns returns the columns in dataset order.
func (d *Dataset) Columns() []*Column { return slices.Clone(d.columns) }

// Column returns the column with the given name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// ColumnNames returns column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.name
	}
	return names
}

// Rows returns the length of the longest column.
func (d *Dataset) Rows() int {
	n := 0
	for _, c := range d.columns {
		n = max(n, c.Len())
	}
	return n
}
