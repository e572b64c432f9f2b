package checks

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// Shared value patterns.
var (
	datePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})$|^(\d{2}/\d{2}/\d{4})$|^(\d{2}-\d{2}-\d{4})$|^(\d{4}/\d{2}/\d{2})$`)
	timePattern = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2})$|^(\d{2}:\d{2})$`)

	spacingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^` + whitespaceClass + `+`),
		regexp.MustCompile(whitespaceClass + `{2,}`),
		regexp.MustCompile(whitespaceClass + `+$`),
	}
)

// whitespaceChars lists what counts as whitespace inside a character class.
// RE2's \s is ASCII only; this adds vertical tab, NEL, the information
// separators and every Unicode space separator such as NBSP and U+3000.
const whitespaceChars = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

const whitespaceClass = `[` + whitespaceChars + `]`

// ErrUninterpretable is returned for values a check cannot read as text.
var ErrUninterpretable = errors.New("value cannot be interpreted")

// asText renders scalars in their canonical text form. Composite values error.
func asText(value any) (string, error) {
	switch value.(type) {
	case string, []byte, bool, time.Time:
		return core.FormatValue(value), nil
	}
	if core.IsNumber(value) {
		return core.FormatValue(value), nil
	}
	return "", fmt.Errorf("%w: %T", ErrUninterpretable, value)
}

// matchCheck flags values whose text form matches re.
func matchCheck(re *regexp.Regexp) smell.Factory {
	return smell.Stateless(func(value any) (bool, error) {
		s, err := asText(value)
		if err != nil {
			return false, err
		}
		return re.MatchString(s), nil
	})
}

// anyMatchCheck flags values whose text form matches any of the patterns.
func anyMatchCheck(patterns []*regexp.Regexp) smell.Factory {
	return smell.Stateless(func(value any) (bool, error) {
		s, err := asText(value)
		if err != nil {
			return false, err
		}
		for _, re := range patterns {
			if re.MatchString(s) {
				return true, nil
			}
		}
		return false, nil
	})
}

// stringMatchCheck flags string values matching re. Non-string values are clean.
func stringMatchCheck(re *regexp.Regexp) smell.Factory {
	return smell.Stateless(func(value any) (bool, error) {
		s, ok := value.(string)
		if !ok {
			return false, nil
		}
		return re.MatchString(s), nil
	})
}

// types is shorthand for core.NewTypeSet.
func types(t ...core.ColumnDataType) core.TypeSet {
	return core.NewTypeSet(t...)
}

var (
	stringOnly   = []core.ColumnDataType{core.TypeString}
	numericLike  = []core.ColumnDataType{core.TypeString, core.TypeInt, core.TypeFloat, core.TypeNumeric}
	allDataTypes = core.AllColumnDataTypes()
)
