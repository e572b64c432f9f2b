package detect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// Engine applies registered checks to datasets.
// An Engine is safe for concurrent use; the registry must not change while it runs.
type Engine struct {
	registry   *smell.Registry
	workers    int
	sampleSize int
	logger     *slog.Logger
	now        func() time.Time
}

// New creates an engine over reg. A nil registry selects smell.Default().
func New(reg *smell.Registry, opts ...Option) *Engine {
	if reg == nil {
		reg = smell.Default()
	}
	e := &Engine{
		registry:   reg,
		workers:    1,
		sampleSize: smell.DefaultSampleSize,
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the engine draws checks from.
func (e *Engine) Registry() *smell.Registry {
	return e.registry
}

// Detect evaluates the dataset. The request is validated before any check runs.
func (e *Engine) Detect(ds *core.Dataset, req Request) (*Report, error) {
	return e.DetectContext(context.Background(), ds, req)
}

// DetectContext is like Detect but stops scheduling passes once ctx is done.
func (e *Engine) DetectContext(ctx context.Context, ds *core.Dataset, req Request) (*Report, error) {
	if ds == nil {
		return nil, &core.ConfigurationError{Key: "dataset", Reason: "dataset is nil"}
	}

	p, err := buildPlan(e.registry, ds, req)
	if err != nil {
		return nil, err
	}

	started := e.now()
	e.logger.Debug("detection started",
		slog.String("dataset", ds.ID()),
		slog.Int("passes", len(p.passes)),
		slog.Int("workers", e.workers))

	results, err := e.run(ctx, p.passes)
	if err != nil {
		return nil, fmt.Errorf("detect %s: %w", ds.ID(), err)
	}

	report := &Report{
		DatasetID:  ds.ID(),
		Results:    results,
		Statistics: core.Summarize(p.columns, results),
		StartedAt:  started,
		Duration:   e.now().Sub(started),
	}

	e.logger.Info("detection finished",
		slog.String("dataset", ds.ID()),
		slog.Int("columns", report.Statistics.ColumnsEvaluated),
		slog.Int("checks", report.Statistics.ChecksRun),
		slog.Int("failures", report.Statistics.Failures),
		slog.Duration("duration", report.Duration))

	return report, nil
}

// run executes passes and returns results in pass order.
func (e *Engine) run(ctx context.Context, passes []pass) ([]core.DetectionResult, error) {
	results := make([]core.DetectionResult, len(passes))

	if e.workers <= 1 {
		for i, p := range passes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = e.runPass(p)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, p := range passes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.runPass(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runPass evaluates one check over one column.
func (e *Engine) runPass(p pass) core.DetectionResult {
	b := p.binding
	tally := smell.NewTally(b.Mostly, e.sampleSize)
	nullAware := smell.HandlesMissing(b.Check)

	var firstErr error
	for _, v := range p.column.Values() {
		if !nullAware && core.IsMissing(v) {
			tally.Skipped()
			continue
		}
		smelly, err := evaluate(b.Check, v)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			tally.Failed()
			continue
		}
		tally.Observe(v, smelly)
	}

	result := tally.Result(p.column.Name(), b.SmellType())
	if firstErr != nil {
		e.logger.Debug("values could not be evaluated",
			slog.String("column", result.ColumnName),
			slog.String("smell", string(result.SmellType)),
			slog.Int("count", result.ErrorCount),
			slog.String("first_error", firstErr.Error()))
	}
	return result
}

// evaluate runs the check on one value. A panic is reported as an error.
func evaluate(c smell.Check, v any) (smelly bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			smelly, err = false, fmt.Errorf("check panicked: %v", r)
		}
	}()
	return c.Evaluate(v)
}
