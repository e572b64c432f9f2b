// Package smell provides the smell taxonomy and the check registry.
//
// # Checks
//
// A Check evaluates one raw value and reports whether it is smelly.
// Stateful checks (intermingled data types, precision inconsistency) keep
// running state in the instance, so the registry hands out a fresh instance
// from the check's Factory for every (column, smell) pass.
//
// # Registration
//
// Checks register themselves into the default registry from init():
//
//	import _ "github.com/leapstack-labs/datasmell/pkg/smell/checks"
//
// Registration happens once at startup. Thresholds ("mostly") are fixed at
// registration; the only way to change them is to build a configured copy
// of the default registry with Clone.
//
// # Folding
//
// Tally folds per-value verdicts into a core.DetectionResult. A column passes
// when the share of expected values among evaluated values is at least mostly.
package smell
