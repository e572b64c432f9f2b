// Package checks contains the data smell checks.
//
// Checks are organized by prefix to indicate their category:
//
//   - be_*.go: Believability smells (dummy, duplicated and suspect values)
//   - sy_*.go: Syntactic understandability smells (spacing, casing, mixed types)
//   - en_*.go: Encoding understandability smells (dates, times and numbers stored as text)
//   - co_*.go: Consistency smells (spacing and precision drift within a column)
//
// Import this package to register all checks with the default registry:
//
//	import _ "github.com/leapstack-labs/datasmell/pkg/smell/checks"
package checks
