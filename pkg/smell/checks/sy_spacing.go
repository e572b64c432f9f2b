package checks

import (
	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// Spacing flags leading, trailing or repeated whitespace.
var Spacing = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.Spacing,
		SupportedTypes: types(stringOnly...),
		Description:    "Value has leading, trailing or repeated whitespace.",
	},
	Mostly: 0.9,
	New:    anyMatchCheck(spacingPatterns),
}
