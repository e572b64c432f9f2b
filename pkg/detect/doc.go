// Package detect runs smell checks against datasets.
//
// The Engine pairs every column of a dataset with the registered checks that
// support the column's data type, runs each pair as an independent pass over
// the column's values and folds the verdicts into one core.DetectionResult
// per pair. Results are ordered by column, then by registry order, no matter
// how many workers ran the passes.
//
//	engine := detect.New(smell.Default(), detect.WithWorkers(4))
//	report, err := engine.Detect(dataset, detect.Request{})
package detect
