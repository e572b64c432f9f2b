package core

import "strings"

// ColumnDataType is the declared logical type of a column.
// It decides which checks apply to the column.
type ColumnDataType string

// Column data types.
const (
	TypeString   ColumnDataType = "STRING"
	TypeInt      ColumnDataType = "INT"
	TypeFloat    ColumnDataType = "FLOAT"
	TypeNumeric  ColumnDataType = "NUMERIC"
	TypeBoolean  ColumnDataType = "BOOLEAN"
	TypeDatetime ColumnDataType = "DATETIME"
	TypeUnknown  ColumnDataType = "UNKNOWN"
)

// AllColumnDataTypes returns every column data type.
func AllColumnDataTypes() []ColumnDataType {
	return []ColumnDataType{TypeString, TypeInt, TypeFloat, TypeNumeric, TypeBoolean, TypeDatetime, TypeUnknown}
}

// String returns the upper-case type name.
func (t ColumnDataType) String() string {
	return string(t)
}

// IsValid reports whether t is a known column data type.
func (t ColumnDataType) IsValid() bool {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeNumeric, TypeBoolean, TypeDatetime, TypeUnknown:
		return true
	}
	return false
}

// ParseColumnDataType converts a type name to a ColumnDataType (case-insensitive).
func ParseColumnDataType(s string) (ColumnDataType, bool) {
	t := ColumnDataType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", false
	}
	return t, true
}

// TypeSet is a set of column data types.
type TypeSet map[ColumnDataType]struct{}

// NewTypeSet builds a TypeSet from the given types.
func NewTypeSet(types ...ColumnDataType) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Contains reports whether t is in the set.
func (s TypeSet) Contains(t ColumnDataType) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the members in AllColumnDataTypes order.
func (s TypeSet) Sorted() []ColumnDataType {
	out := make([]ColumnDataType, 0, len(s))
	for _, t := range AllColumnDataTypes() {
		if s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}
