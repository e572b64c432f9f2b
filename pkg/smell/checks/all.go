package checks

import "github.com/leapstack-labs/datasmell/pkg/smell"

// Importing this package registers the following checks, in catalogue order:
//
// Believability:
//   - dummy-value: placeholder values such as 999, UNK or N/A
//   - duplicated-value: a value already seen in the column
//   - suspect-date-value: ISO dates before 1950 or in the future
//
// Syntactic understandability:
//   - casing: text mixing upper and lower case irregularly
//   - intermingled-data-type: a column mixing text, numbers and dates
//   - long-data-value: values longer than 100 characters
//   - missing-value: nil, NaN, empty or blank values
//   - spacing: leading, trailing or repeated whitespace
//
// Encoding understandability:
//   - date-as-string: dates stored as text
//   - floating-point-number-as-string: decimals stored as text
//   - integer-as-string: integers stored as text
//   - time-as-string: times of day stored as text
//
// Consistency:
//   - spacing-inconsistency: values with irregular whitespace
//   - precision-inconsistency: floats with varying decimal places
var all = []smell.CheckDef{
	DummyValue,
	DuplicatedValue,
	SuspectDateValue,

	Casing,
	IntermingledDataType,
	LongDataValue,
	MissingValue,
	Spacing,

	DateAsString,
	FloatingPointNumberAsString,
	IntegerAsString,
	TimeAsString,

	SpacingInconsistency,
	PrecisionInconsistency,
}

func init() {
	for _, def := range all {
		smell.MustRegister(def)
	}
}
