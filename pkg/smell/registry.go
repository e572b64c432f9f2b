package smell

import (
	"fmt"
	"math"
	"sync"

	"github.com/leapstack-labs/datasmell/pkg/core"
)

// defaultRegistry is the registry checks add themselves to from init().
var defaultRegistry = NewRegistry()

// Registry binds smell types to check definitions.
type Registry struct {
	mu       sync.RWMutex
	taxonomy *Taxonomy
	defs     map[core.DataSmellType]CheckDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		taxonomy: NewTaxonomy(),
		defs:     make(map[core.DataSmellType]CheckDef),
	}
}

// Default returns the process-wide registry populated by the checks package.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a check to the default registry.
// Call this from init() functions in check packages.
func Register(def CheckDef) error {
	return defaultRegistry.Register(def)
}

// MustRegister is like Register but panics on error.
func MustRegister(def CheckDef) {
	if err := Register(def); err != nil {
		panic(fmt.Sprintf("smell: register %s: %v", def.Metadata.SmellType, err))
	}
}

// Register adds a check definition.
func (r *Registry) Register(def CheckDef) error {
	if def.New == nil {
		return &core.ConfigurationError{Key: string(def.Metadata.SmellType), Reason: "check factory is nil"}
	}
	if err := validateMostly(def.Metadata.SmellType, def.Mostly); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.taxonomy.Register(def.Metadata); err != nil {
		return err
	}
	r.defs[def.Metadata.SmellType] = def
	return nil
}

func validateMostly(st core.DataSmellType, mostly float64) error {
	if math.IsNaN(mostly) || mostly < 0 || mostly > 1 {
		return &core.ConfigurationError{
			Key:    fmt.Sprintf("thresholds.%s", st),
			Reason: fmt.Sprintf("mostly must be within [0, 1], got %v", mostly),
		}
	}
	return nil
}

// Taxonomy returns a snapshot of the registry's taxonomy. Registering into
// the snapshot does not affect the registry; use Register to add checks.
func (r *Registry) Taxonomy() *Taxonomy {
	return r.taxonomy.clone()
}

// Definitions returns every check definition in registration order.
func (r *Registry) Definitions() []CheckDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	metas := r.taxonomy.All()
	out := make([]CheckDef, len(metas))
	for i, m := range metas {
		out[i] = r.defs[m.SmellType]
	}
	return out
}

// Infos returns a serializable description of every check in registration order.
func (r *Registry) Infos() []Info {
	defs := r.Definitions()
	out := make([]Info, len(defs))
	for i, d := range defs {
		out[i] = InfoFor(d)
	}
	return out
}

// Types returns the registered smell types in registration order.
func (r *Registry) Types() []core.DataSmellType {
	metas := r.taxonomy.All()
	out := make([]core.DataSmellType, len(metas))
	for i, m := range metas {
		out[i] = m.SmellType
	}
	return out
}

// Count returns the number of registered checks.
func (r *Registry) Count() int {
	return r.taxonomy.Len()
}

// Lookup returns the definition registered for st.
func (r *Registry) Lookup(st core.DataSmellType) (CheckDef, error) {
	if _, err := r.taxonomy.Lookup(st); err != nil {
		return CheckDef{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defs[st], nil
}

// Mostly returns the configured threshold of a smell type.
func (r *Registry) Mostly(st core.DataSmellType) (float64, error) {
	def, err := r.Lookup(st)
	if err != nil {
		return 0, err
	}
	return def.Mostly, nil
}

// Resolve verifies that every requested smell type is registered.
func (r *Registry) Resolve(types []core.DataSmellType) error {
	for _, st := range types {
		if _, err := r.taxonomy.Lookup(st); err != nil {
			return err
		}
	}
	return nil
}

// ApplicableChecks returns a fresh binding for every check that supports the
// column's data type, in registration order. A column of a type no check
// supports yields an empty slice.
func (r *Registry) ApplicableChecks(col *core.Column) []Binding {
	var out []Binding
	for _, def := range r.Definitions() {
		if def.Metadata.Supports(col.DataType()) {
			out = append(out, bind(def))
		}
	}
	return out
}

// CheckFor returns a fresh binding for an explicitly requested smell on a column.
func (r *Registry) CheckFor(col *core.Column, st core.DataSmellType) (Binding, error) {
	def, err := r.Lookup(st)
	if err != nil {
		return Binding{}, err
	}
	if !def.Metadata.Supports(col.DataType()) {
		return Binding{}, &core.UnsupportedColumnTypeError{
			Column:    col.Name(),
			DataType:  col.DataType(),
			SmellType: st,
			Supported: def.Metadata.SupportedTypes.Sorted(),
		}
	}
	return bind(def), nil
}

func bind(def CheckDef) Binding {
	return Binding{Metadata: def.Metadata, Mostly: def.Mostly, Check: def.New()}
}

// Clone builds a new registry holding r's definitions with cfg applied:
// disabled smells are left out and thresholds are replaced.
func (r *Registry) Clone(cfg *Config) (*Registry, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	for st := range cfg.Thresholds {
		if _, err := r.taxonomy.Lookup(st); err != nil {
			return nil, err
		}
	}
	for st := range cfg.Disabled {
		if _, err := r.taxonomy.Lookup(st); err != nil {
			return nil, err
		}
	}

	out := NewRegistry()
	for _, def := range r.Definitions() {
		if cfg.IsDisabled(def.Metadata.SmellType) {
			continue
		}
		def.Mostly = cfg.GetMostly(def.Metadata.SmellType, def.Mostly)
		if err := out.Register(def); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Clone configures a copy of the default registry.
func Clone(cfg *Config) (*Registry, error) {
	return defaultRegistry.Clone(cfg)
}
