package checks

import (
	"fmt"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// DuplicatedValue flags a value already seen earlier in the same column.
var DuplicatedValue = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.DuplicatedValue,
		SupportedTypes: types(numericLike...),
		Description:    "Value repeats an earlier value of the column.",
	},
	Mostly: 0.5,
	New:    func() smell.Check { return &duplicatedValueCheck{seen: make(map[string]struct{})} },
}

type duplicatedValueCheck struct {
	seen map[string]struct{}
}

func (c *duplicatedValueCheck) Evaluate(value any) (bool, error) {
	s, err := asText(value)
	if err != nil {
		return false, err
	}
	// keep "1" and 1 apart
	key := fmt.Sprintf("%T:%s", value, s)
	if _, dup := c.seen[key]; dup {
		return true, nil
	}
	c.seen[key] = struct{}{}
	return false, nil
}
