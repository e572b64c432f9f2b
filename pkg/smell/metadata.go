package smell

import (
	"fmt"
	"slices"
	"sync"

	"github.com/leapstack-labs/datasmell/pkg/core"
)

// SmellMetadata describes a registered smell.
type SmellMetadata struct {
	SmellType      core.DataSmellType
	SupportedTypes core.TypeSet
	Description    string
}

// Category returns the catalogue category of the smell.
func (m SmellMetadata) Category() core.Category {
	return m.SmellType.Category()
}

// Supports reports whether the smell applies to columns of type t.
func (m SmellMetadata) Supports(t core.ColumnDataType) bool {
	return m.SupportedTypes.Contains(t)
}

// Taxonomy holds smell metadata in registration order.
type Taxonomy struct {
	mu      sync.RWMutex
	order   []core.DataSmellType
	entries map[core.DataSmellType]SmellMetadata
}

// NewTaxonomy creates an empty taxonomy.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{entries: make(map[core.DataSmellType]SmellMetadata)}
}

// Register adds metadata for a smell type.
func (t *Taxonomy) Register(meta SmellMetadata) error {
	if !meta.SmellType.IsValid() {
		return &core.ConfigurationError{
			Key:    "smell_type",
			Reason: fmt.Sprintf("%q is not in the smell catalogue", meta.SmellType),
		}
	}
	if len(meta.SupportedTypes) == 0 {
		return &core.ConfigurationError{
			Key:    string(meta.SmellType),
			Reason: "supported types must not be empty",
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[meta.SmellType]; exists {
		return &core.DuplicateRegistrationError{SmellType: meta.SmellType}
	}
	t.entries[meta.SmellType] = meta
	t.order = append(t.order, meta.SmellType)
	return nil
}

// Lookup returns the metadata of a smell type.
func (t *Taxonomy) Lookup(st core.DataSmellType) (SmellMetadata, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	meta, ok := t.entries[st]
	if !ok {
		return SmellMetadata{}, &core.UnknownSmellError{Name: string(st), Available: t.namesLocked()}
	}
	return meta, nil
}

// All returns every registered record in registration order.
func (t *Taxonomy) All() []SmellMetadata {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]SmellMetadata, len(t.order))
	for i, st := range t.order {
		out[i] = t.entries[st]
	}
	return out
}

func (t *Taxonomy) clone() *Taxonomy {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := &Taxonomy{
		order:   slices.Clone(t.order),
		entries: make(map[core.DataSmellType]SmellMetadata, len(t.entries)),
	}
	for st, meta := range t.entries {
		out.entries[st] = meta
	}
	return out
}

// Len returns the number of registered smells.
func (t *Taxonomy) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

func (t *Taxonomy) namesLocked() []string {
	names := make([]string, len(t.order))
	for i, st := range t.order {
		names[i] = string(st)
	}
	return names
}
