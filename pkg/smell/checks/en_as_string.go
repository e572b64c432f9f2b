package checks

import (
	"regexp"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

var (
	integerTextPattern = regexp.MustCompile(`^[+-]?\d+$`)
	floatTextPattern   = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// DateAsString flags dates stored as text.
var DateAsString = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.DateAsString,
		SupportedTypes: types(stringOnly...),
		Description:    "Date (YYYY-MM-DD, MM/DD/YYYY, MM-DD-YYYY or YYYY/MM/DD) stored as text.",
	},
	Mostly: 0.1,
	New:    matchCheck(datePattern),
}

// TimeAsString flags times of day stored as text.
var TimeAsString = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.TimeAsString,
		SupportedTypes: types(stringOnly...),
		Description:    "Time (HH:MM:SS or HH:MM) stored as text.",
	},
	Mostly: 0.1,
	New:    matchCheck(timePattern),
}

// IntegerAsString flags integers stored as text.
var IntegerAsString = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.IntegerAsString,
		SupportedTypes: types(stringOnly...),
		Description:    "Integer stored as text.",
	},
	Mostly: 0.1,
	New:    stringMatchCheck(integerTextPattern),
}

// FloatingPointNumberAsString flags decimal numbers stored as text.
var FloatingPointNumberAsString = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.FloatingPointNumberAsString,
		SupportedTypes: types(stringOnly...),
		Description:    "Decimal number stored as text.",
	},
	Mostly: 0.1,
	New:    stringMatchCheck(floatTextPattern),
}
