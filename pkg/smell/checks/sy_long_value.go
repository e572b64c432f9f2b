package checks

import (
	"unicode/utf8"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// MaxValueLength is the longest value, in characters, not flagged as long.
const MaxValueLength = 100

// LongDataValue flags values longer than MaxValueLength characters.
var LongDataValue = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.LongDataValue,
		SupportedTypes: types(stringOnly...),
		Description:    "Value is longer than 100 characters.",
	},
	Mostly: 0.9,
	New: smell.Stateless(func(value any) (bool, error) {
		s, err := asText(value)
		if err != nil {
			return false, err
		}
		return utf8.RuneCountInString(s) > MaxValueLength, nil
	}),
}
