package checks

import (
	"time"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// earliestPlausibleYear is the first year of believable dates.
const earliestPlausibleYear = 1950

// SuspectDateValue flags ISO dates that are implausibly old or in the future.
var SuspectDateValue = smell.CheckDef{
	Metadata: smell.SmellMetadata{
		SmellType:      core.SuspectDateValue,
		SupportedTypes: types(stringOnly...),
		Description:    "Date (YYYY-MM-DD) lies before 1950-01-01 or more than a day in the future.",
	},
	Mostly: 0.1,
	New:    func() smell.Check { return NewSuspectDateCheck(time.Now) },
}

// SuspectDateCheck evaluates dates against a clock.
type SuspectDateCheck struct {
	now func() time.Time
}

// NewSuspectDateCheck creates a check reading the current time from now.
func NewSuspectDateCheck(now func() time.Time) *SuspectDateCheck {
	return &SuspectDateCheck{now: now}
}

// Evaluate parses the value as YYYY-MM-DD. Unparsable values are clean.
// Dates are read as midnight in the clock's location, so the cutoffs are
// wall-clock days rather than UTC days.
func (c *SuspectDateCheck) Evaluate(value any) (bool, error) {
	s, err := asText(value)
	if err != nil {
		return false, err
	}
	now := c.now()
	loc := now.Location()
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return false, nil
	}
	earliest := time.Date(earliestPlausibleYear, time.January, 1, 0, 0, 0, 0, loc)
	latest := now.Add(24 * time.Hour)
	return t.Before(earliest) || t.After(latest), nil
}
