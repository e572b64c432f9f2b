package smell

import "github.com/leapstack-labs/datasmell/pkg/core"

// Check evaluates a single raw value.
// It returns true when the value is smelly. An error means the value could
// not be interpreted; callers treat it as clean.
type Check interface {
	Evaluate(value any) (bool, error)
}

// NullAware is implemented by checks that want to see nil and NaN values.
// All other checks never receive them.
type NullAware interface {
	Check
	HandlesMissing() bool
}

// Factory creates a fresh check instance for one column pass.
type Factory func() Check

// CheckFunc adapts a stateless function to the Check interface.
type CheckFunc func(value any) (bool, error)

// Evaluate calls f(value).
func (f CheckFunc) Evaluate(value any) (bool, error) {
	return f(value)
}

// Stateless returns a Factory for a stateless check function.
func Stateless(f func(value any) (bool, error)) Factory {
	return func() Check { return CheckFunc(f) }
}

// HandlesMissing reports whether c wants nil values.
func HandlesMissing(c Check) bool {
	na, ok := c.(NullAware)
	return ok && na.HandlesMissing()
}

// CheckDef defines a check for registration.
type CheckDef struct {
	Metadata SmellMetadata
	Mostly   float64
	New      Factory
}

// Binding is a check instance ready to run against one column.
type Binding struct {
	Metadata SmellMetadata
	Mostly   float64
	Check    Check
}

// SmellType returns the smell the binding detects.
func (b Binding) SmellType() core.DataSmellType {
	return b.Metadata.SmellType
}

// Info is a serializable description of a registered check.
type Info struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	SupportedTypes []string `json:"supported_types"`
	Mostly         float64  `json:"mostly"`
	Description    string   `json:"description"`
}

// InfoFor builds an Info from a definition.
func InfoFor(def CheckDef) Info {
	types := def.Metadata.SupportedTypes.Sorted()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return Info{
		ID:             string(def.Metadata.SmellType),
		Name:           def.Metadata.SmellType.Name(),
		Category:       string(def.Metadata.Category()),
		SupportedTypes: names,
		Mostly:         def.Mostly,
		Description:    def.Metadata.Description,
	}
}
