package checks

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// Casing flags text whose letter case follows no recognised convention.
// Lower, upper, title and sentence case are accepted.
var Casing = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.Casing,
		SupportedTypes: types(stringOnly...),
		Description:    "Value mixes upper and lower case outside lower, upper, title or sentence case.",
	},
	Mostly: 0.9,
	New: func() smell.Check {
		return &casingCheck{
			lower: cases.Lower(language.Und),
			upper: cases.Upper(language.Und),
			title: cases.Title(language.Und),
		}
	},
}

// casingCheck owns its casers; cases.Caser is not safe for concurrent use.
type casingCheck struct {
	lower cases.Caser
	upper cases.Caser
	title cases.Caser
}

func (c *casingCheck) Evaluate(value any) (bool, error) {
	s, ok := value.(string)
	if !ok || !strings.ContainsFunc(s, unicode.IsLetter) {
		return false, nil
	}
	lower := c.lower.String(s)
	switch s {
	case lower, c.upper.String(s), c.title.String(s), sentenceCase(c.upper, lower):
		return false, nil
	}
	return true, nil
}

// sentenceCase upper-cases the first letter of an already lower-cased string.
func sentenceCase(upper cases.Caser, lower string) string {
	i := strings.IndexFunc(lower, unicode.IsLetter)
	if i < 0 {
		return lower
	}
	_, size := utf8.DecodeRuneInString(lower[i:])
	return lower[:i] + upper.String(lower[i:i+size]) + lower[i+size:]
}
