// Package core defines the shared language of the datasmell system.
//
// This package contains:
//   - The smell catalogue (DataSmellType, Category)
//   - Column data types used to decide which checks apply (ColumnDataType)
//   - The read-only dataset view handed to the engine (Column, Dataset)
//   - Detection results and run statistics (DetectionResult, DetectionStatistics)
//   - The error kinds raised by registration and detection calls
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
