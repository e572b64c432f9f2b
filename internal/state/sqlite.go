package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/detect"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store. Call Open before use. A nil logger discards.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// NewWithDB wraps an already opened database. Migrations are not run.
func NewWithDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open opens the database at path and runs pending migrations.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(ctx context.Context, path string) error {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	} else {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}

	s.logger.Debug("state store opened", slog.String("path", path))
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func generateID() string {
	return uuid.New().String()
}

// SaveReport stores the report in one transaction.
func (s *SQLiteStore) SaveReport(ctx context.Context, ds *core.Dataset, report *detect.Report, source string) (*Run, error) {
	if s.db == nil {
		return nil, errors.New("database not opened")
	}
	if ds == nil || report == nil {
		return nil, errors.New("dataset and report are required")
	}

	run := &Run{
		ID:         generateID(),
		DatasetID:  report.DatasetID,
		Source:     source,
		Rows:       ds.Rows(),
		StartedAt:  report.StartedAt.UTC(),
		Duration:   report.Duration,
		Statistics: report.Statistics,
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stats := run.Statistics
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, dataset_id, started_at_ms, duration_ns, columns_evaluated, checks_run, smells_found, failures)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.DatasetID, run.StartedAt.UnixMilli(), int64(run.Duration),
		stats.ColumnsEvaluated, stats.ChecksRun, stats.SmellsFound, stats.Failures,
	); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	fileID := generateID()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO files (id, run_id, name, source, row_count) VALUES (?, ?, ?, ?, ?)`,
		fileID, run.ID, ds.ID(), source, run.Rows,
	); err != nil {
		return nil, fmt.Errorf("failed to insert file: %w", err)
	}

	columnIDs := make(map[string]string)
	insertColumn := func(name string, dataType core.ColumnDataType) (string, error) {
		id := generateID()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO columns (id, file_id, name, data_type, position) VALUES (?, ?, ?, ?, ?)`,
			id, fileID, name, string(dataType), len(columnIDs),
		); err != nil {
			return "", fmt.Errorf("failed to insert column %s: %w", name, err)
		}
		columnIDs[name] = id
		return id, nil
	}
	for _, col := range ds.Columns() {
		if _, err := insertColumn(col.Name(), col.DataType()); err != nil {
			return nil, err
		}
	}

	for i, res := range report.Results {
		columnID, ok := columnIDs[res.ColumnName]
		if !ok {
			if columnID, err = insertColumn(res.ColumnName, core.TypeUnknown); err != nil {
				return nil, err
			}
		}
		samples, err := encodeValues(res.UnexpectedValues)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO detected_smells (id, column_id, smell_type, position, success, unexpected_count,
			 evaluated_count, missing_count, error_count, mostly, unexpected_values)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			generateID(), columnID, string(res.SmellType), i, res.Success, res.UnexpectedCount,
			res.EvaluatedCount, res.MissingCount, res.ErrorCount, res.Mostly, samples,
		); err != nil {
			return nil, fmt.Errorf("failed to insert result %s/%s: %w", res.ColumnName, res.SmellType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}

	s.logger.Debug("run saved",
		slog.String("id", run.ID),
		slog.String("dataset", run.DatasetID),
		slog.Int("results", len(report.Results)))
	return run, nil
}

const runColumns = `r.id, r.dataset_id, COALESCE(f.source, ''), COALESCE(f.row_count, 0), r.started_at_ms,
	r.duration_ns, r.columns_evaluated, r.checks_run, r.smells_found, r.failures`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run       Run
		startedMS int64
		duration  int64
	)
	if err := row.Scan(&run.ID, &run.DatasetID, &run.Source, &run.Rows, &startedMS, &duration,
		&run.Statistics.ColumnsEvaluated, &run.Statistics.ChecksRun,
		&run.Statistics.SmellsFound, &run.Statistics.Failures); err != nil {
		return nil, err
	}
	run.StartedAt = time.UnixMilli(startedMS).UTC()
	run.Duration = time.Duration(duration)
	return &run, nil
}

// ListRuns returns runs, most recent first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, errors.New("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+`
		 FROM runs r LEFT JOIN files f ON f.run_id = r.id
		 ORDER BY r.started_at_ms DESC, r.rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, errors.New("database not opened")
	}

	run, err := scanRun(s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+`
		 FROM runs r LEFT JOIN files f ON f.run_id = r.id
		 WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// GetRunResults returns a run's results in the order they were detected.
func (s *SQLiteStore) GetRunResults(ctx context.Context, id string) ([]core.DetectionResult, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.name, d.smell_type, d.success, d.unexpected_count, d.evaluated_count,
		        d.missing_count, d.error_count, d.mostly, d.unexpected_values
		 FROM detected_smells d
		 JOIN columns c ON c.id = d.column_id
		 JOIN files f ON f.id = c.file_id
		 WHERE f.run_id = ?
		 ORDER BY d.position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := []core.DetectionResult{}
	for rows.Next() {
		var (
			res       core.DetectionResult
			smellType string
			samples   string
		)
		if err := rows.Scan(&res.ColumnName, &smellType, &res.Success, &res.UnexpectedCount,
			&res.EvaluatedCount, &res.MissingCount, &res.ErrorCount, &res.Mostly, &samples); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		res.SmellType = core.DataSmellType(smellType)
		if res.UnexpectedValues, err = decodeValues(samples); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return results, nil
}

// DeleteRun removes a run. Files, columns and results cascade.
func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	if s.db == nil {
		return errors.New("database not opened")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	s.logger.Debug("run deleted", slog.String("id", id))
	return nil
}

// encodeValues stores unexpected values as a JSON array of their display text.
func encodeValues(values []any) (string, error) {
	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = core.FormatValue(v)
	}
	b, err := json.Marshal(texts)
	if err != nil {
		return "", fmt.Errorf("failed to encode unexpected values: %w", err)
	}
	return string(b), nil
}

func decodeValues(s string) ([]any, error) {
	var texts []string
	if err := json.Unmarshal([]byte(s), &texts); err != nil {
		return nil, fmt.Errorf("failed to decode unexpected values: %w", err)
	}
	values := make([]any, len(texts))
	for i, t := range texts {
		values[i] = t
	}
	return values, nil
}
