package detect

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// Target requests one smell on one column.
type Target struct {
	Column string             `json:"column"`
	Smell  core.DataSmellType `json:"smell"`
}

// Request selects what a Detect call evaluates.
type Request struct {
	// Smells restricts detection to these smell types. Empty means all applicable.
	Smells []core.DataSmellType `json:"smells,omitempty"`

	// Columns restricts detection to these columns, with every applicable smell.
	Columns []string `json:"columns,omitempty"`

	// Targets restricts detection to explicit (column, smell) pairs. A target
	// whose smell does not support the column's type is an error. Columns and
	// Targets combine: a column is evaluated if either selects it.
	Targets []Target `json:"targets,omitempty"`

	// Overrides carries per-call parameter changes. Thresholds and patterns
	// are fixed at registration, so any entry is rejected.
	Overrides map[string]any `json:"overrides,omitempty"`
}

// plan is the validated set of passes for one dataset.
type plan struct {
	passes  []pass
	columns int
}

type pass struct {
	column  *core.Column
	binding smell.Binding
}

// buildPlan validates req against the registry and dataset and lists the passes
// in column order, then registry order.
func buildPlan(reg *smell.Registry, ds *core.Dataset, req Request) (*plan, error) {
	if len(req.Overrides) > 0 {
		keys := make([]string, 0, len(req.Overrides))
		for k := range req.Overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, &core.ConfigurationError{
			Key:    strings.Join(keys, ","),
			Reason: "parameters are fixed at registration and cannot be overridden per call",
		}
	}

	if err := reg.Resolve(req.Smells); err != nil {
		return nil, err
	}

	for _, name := range req.Columns {
		if _, ok := ds.Column(name); !ok {
			return nil, &core.ConfigurationError{
				Key:    "columns",
				Reason: fmt.Sprintf("column %q does not exist in dataset %q", name, ds.ID()),
			}
		}
	}

	targeted := make(map[string][]core.DataSmellType)
	for _, tgt := range req.Targets {
		col, ok := ds.Column(tgt.Column)
		if !ok {
			return nil, &core.ConfigurationError{
				Key:    "targets",
				Reason: fmt.Sprintf("column %q does not exist in dataset %q", tgt.Column, ds.ID()),
			}
		}
		if _, err := reg.CheckFor(col, tgt.Smell); err != nil {
			return nil, err
		}
		targeted[tgt.Column] = append(targeted[tgt.Column], tgt.Smell)
	}

	selective := len(req.Targets) > 0 || len(req.Columns) > 0
	p := &plan{}
	for _, col := range ds.Columns() {
		whole := slices.Contains(req.Columns, col.Name())
		if selective && !whole && len(targeted[col.Name()]) == 0 {
			continue
		}
		n := len(p.passes)
		for _, b := range reg.ApplicableChecks(col) {
			if len(req.Smells) > 0 && !slices.Contains(req.Smells, b.SmellType()) {
				continue
			}
			if selective && !whole && !slices.Contains(targeted[col.Name()], b.SmellType()) {
				continue
			}
			p.passes = append(p.passes, pass{column: col, binding: b})
		}
		if len(p.passes) > n {
			p.columns++
		}
	}
	return p, nil
}

// ParseSelection splits column selectors of the form "column" or
// "column:smell" into whole columns and targets.
func ParseSelection(specs []string) (columns []string, targets []Target, err error) {
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		name, smellName, hasSmell := strings.Cut(spec, ":")
		if !hasSmell {
			columns = append(columns, name)
			continue
		}
		st, ok := core.ParseDataSmellType(smellName)
		if !ok {
			return nil, nil, &core.UnknownSmellError{Name: smellName}
		}
		targets = append(targets, Target{Column: name, Smell: st})
	}
	return columns, targets, nil
}

// ParseSmells converts smell identifiers or display names to smell types.
func ParseSmells(names []string) ([]core.DataSmellType, error) {
	var out []core.DataSmellType
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		st, ok := core.ParseDataSmellType(name)
		if !ok {
			return nil, &core.UnknownSmellError{Name: name}
		}
		out = append(out, st)
	}
	return out, nil
}
