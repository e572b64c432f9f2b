package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/datasmell/pkg/core"
)

// Document is an inline dataset: named columns with their values.
// Unknown fields cause parse errors.
//
//	id: customers
//	columns:
//	  - name: email
//	    type: string
//	    values: ["a@example.com", " b@example.com", null]
type Document struct {
	ID          string           `json:"id" yaml:"id"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Cols        []ColumnDocument `json:"columns" yaml:"columns"`
}

// ColumnDocument is one column of a Document. An empty Type is inferred
// from the values.
type ColumnDocument struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Values []any  `json:"values" yaml:"values"`
}

// ParseDocument decodes a YAML (or JSON) dataset document.
func ParseDocument(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset document is empty")
		}
		return nil, fmt.Errorf("failed to decode dataset document: %w", err)
	}
	return &doc, nil
}

// Columns converts the document columns to core columns.
func (d *Document) Columns() ([]*core.Column, error) {
	if len(d.Cols) == 0 {
		return nil, errors.New("dataset document has no columns")
	}
	columns := make([]*core.Column, 0, len(d.Cols))
	for i, c := range d.Cols {
		if c.Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		col, err := c.column()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// Dataset converts the document to a dataset. fallbackID is used when the
// document has no id.
func (d *Document) Dataset(fallbackID string) (*core.Dataset, error) {
	columns, err := d.Columns()
	if err != nil {
		return nil, err
	}
	id := d.ID
	if id == "" {
		id = fallbackID
	}
	return core.NewDataset(id, columns...)
}

func (c ColumnDocument) column() (*core.Column, error) {
	values := make([]any, len(c.Values))
	for i, v := range c.Values {
		nv, err := normalizeDecoded(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = nv
	}

	dataType := TagNative(values)
	if c.Type != "" {
		t, ok := core.ParseColumnDataType(c.Type)
		if !ok {
			return nil, fmt.Errorf("unknown column type %q", c.Type)
		}
		dataType = t
	}

	if dataType == core.TypeInt {
		values = integralFloatsToInts(values)
	}
	return core.NewColumn(c.Name, dataType, values), nil
}

// normalizeDecoded maps decoder output to raw column value kinds.
// Nested lists and maps are rejected.
func normalizeDecoded(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, float64, int64:
		return v, nil
	case int:
		return int64(x), nil
	case uint64:
		return x, nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", x.String())
		}
		return f, nil
	case []any, map[string]any:
		return nil, fmt.Errorf("nested value of type %T is not supported", v)
	default:
		return v, nil
	}
}

// integralFloatsToInts repairs JSON decoding, which yields float64 for every number.
func integralFloatsToInts(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<63 {
			out[i] = int64(f)
			continue
		}
		out[i] = v
	}
	return out
}
