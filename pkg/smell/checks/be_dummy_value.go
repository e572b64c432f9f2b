package checks

import (
	"regexp"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

var dummyValuePattern = regexp.MustCompile(`^(0|1|999|9999|8888|UNK|N/A)$`)

// DummyValue flags placeholder values standing in for unknown data.
var DummyValue = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.DummyValue,
		SupportedTypes: types(numericLike...),
		Description:    "Value is a known placeholder (0, 1, 999, 9999, 8888, UNK, N/A).",
	},
	Mostly: 0.1,
	New:    matchCheck(dummyValuePattern),
}
