// Package state persists detection runs in SQLite.
//
// A run records one detection over one dataset file: the file, its columns
// and every detected smell result, so past reports can be listed and shown
// again without re-reading the data.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/detect"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is the summary of a stored detection run.
type Run struct {
	ID         string                   `json:"id"`
	DatasetID  string                   `json:"dataset_id"`
	Source     string                   `json:"source,omitempty"`
	Rows       int                      `json:"rows"`
	StartedAt  time.Time                `json:"started_at"`
	Duration   time.Duration            `json:"duration_ns"`
	Statistics core.DetectionStatistics `json:"statistics"`
}

// Store is the persistence interface for detection runs.
type Store interface {
	// SaveReport stores a report together with the dataset it was computed on.
	// source is where the dataset came from, such as a file path.
	SaveReport(ctx context.Context, ds *core.Dataset, report *detect.Report, source string) (*Run, error)

	// ListRuns returns the most recent runs first. limit <= 0 returns all.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// GetRun returns one run or an error wrapping ErrRunNotFound.
	GetRun(ctx context.Context, id string) (*Run, error)

	// GetRunResults returns a run's results in detection order. Unexpected
	// values come back as their display text.
	GetRunResults(ctx context.Context, id string) ([]core.DetectionResult, error)

	// DeleteRun removes a run and everything recorded with it.
	DeleteRun(ctx context.Context, id string) error

	Close() error
}

// LoadReport rebuilds the report of a stored run.
func LoadReport(ctx context.Context, s Store, id string) (*Run, *detect.Report, error) {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	results, err := s.GetRunResults(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return run, &detect.Report{
		DatasetID:  run.DatasetID,
		Results:    results,
		Statistics: run.Statistics,
		StartedAt:  run.StartedAt,
		Duration:   run.Duration,
	}, nil
}
