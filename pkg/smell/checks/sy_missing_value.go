package checks

import (
	"strings"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// MissingValue flags nil, NaN, empty and whitespace-only values.
var MissingValue = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.MissingValue,
		SupportedTypes: types(allDataTypes...),
		Description:    "Value is missing (null, NaN, empty or blank).",
	},
	Mostly: 0.9,
	New:    func() smell.Check { return missingValueCheck{} },
}

type missingValueCheck struct{}

// HandlesMissing opts the check into receiving nil and NaN values.
func (missingValueCheck) HandlesMissing() bool { return true }

func (missingValueCheck) Evaluate(value any) (bool, error) {
	if core.IsMissing(value) {
		return true, nil
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == "", nil
	}
	return false, nil
}
