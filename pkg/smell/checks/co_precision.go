package checks

import (
	"strings"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// PrecisionInconsistency flags floats once the column has shown more than
// one number of decimal places.
var PrecisionInconsistency = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.PrecisionInconsistency,
		SupportedTypes: types(core.TypeFloat),
		Description:    "Number of decimal places varies across the column.",
	},
	Mostly: 0.95,
	New:    func() smell.Check { return &precisionCheck{places: make(map[int]struct{})} },
}

type precisionCheck struct {
	places map[int]struct{}
}

func (c *precisionCheck) Evaluate(value any) (bool, error) {
	s, err := asText(value)
	if err != nil {
		return false, err
	}
	c.places[decimalPlaces(s)] = struct{}{}
	return len(c.places) > 1, nil
}

// decimalPlaces counts the characters after the first '.'; none means zero.
func decimalPlaces(s string) int {
	_, frac, found := strings.Cut(s, ".")
	if !found {
		return 0
	}
	return len(frac)
}
