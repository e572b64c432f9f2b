package checks

import (
	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// SpacingInconsistency flags values whose whitespace breaks the column's convention.
// It shares the spacing patterns but tolerates far fewer offenders.
var SpacingInconsistency = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.SpacingInconsistency,
		SupportedTypes: types(stringOnly...),
		Description:    "Whitespace is used inconsistently across the column.",
	},
	Mostly: 0.95,
	New:    anyMatchCheck(spacingPatterns),
}
