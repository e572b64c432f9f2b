package checks

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

var (
	alphaPattern    = regexp.MustCompile(`^[a-zA-Z` + whitespaceChars + `]+$`)
	numericPattern  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	datetimePattern = regexp.MustCompile(`^(?:(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})|(\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2})|(\d{2}-\d{2}-\d{4} \d{2}:\d{2}:\d{2})|(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}))`)
)

// IntermingledDataType flags values once the column has mixed kinds of data.
var IntermingledDataType = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.IntermingledDataType,
		SupportedTypes: types(numericLike...),
		Description:    "Column mixes text, numbers, dates and date-times.",
	},
	Mostly: 0.1,
	New:    func() smell.Check { return &intermingledCheck{kinds: make(map[string]struct{})} },
}

type intermingledCheck struct {
	kinds map[string]struct{}
}

func (c *intermingledCheck) Evaluate(value any) (bool, error) {
	kind, err := valueKind(value)
	if err != nil {
		return false, err
	}
	if kind != "" {
		c.kinds[kind] = struct{}{}
	}
	return len(c.kinds) > 1, nil
}

// valueKind classifies a value; the first matching kind wins and
// unrecognised strings have no kind.
func valueKind(value any) (string, error) {
	if _, isBool := value.(bool); !isBool && core.IsNumber(value) {
		return "numeric", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrUninterpretable, value)
	}
	switch {
	case alphaPattern.MatchString(s):
		return "string", nil
	case numericPattern.MatchString(s):
		return "numeric", nil
	case datePattern.MatchString(s):
		return "date", nil
	case datetimePattern.MatchString(s):
		return "datetime", nil
	default:
		return "", nil
	}
}
