package state

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datasmell/internal/testutil"
	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/detect"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(context.Background(), ":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleDataset(t *testing.T) *core.Dataset {
	t.Helper()
	return testutil.NewDataset(t, "customers.csv",
		core.NewColumn("name", core.TypeString, []any{"Ada", " Grace", "UNK"}),
		core.NewColumn("visits", core.TypeInt, []any{int64(1), int64(999), nil}),
	)
}

func sampleReport(startedAt time.Time) *detect.Report {
	results := []core.DetectionResult{
		{ColumnName: "name", SmellType: core.Spacing, Success: false, UnexpectedValues: []any{" Grace"},
			UnexpectedCount: 1, EvaluatedCount: 3, Mostly: 0.9},
		{ColumnName: "name", SmellType: core.DummyValue, Success: true, UnexpectedValues: []any{"UNK"},
			UnexpectedCount: 1, EvaluatedCount: 3, Mostly: 0.1},
		{ColumnName: "visits", SmellType: core.DummyValue, Success: false, UnexpectedValues: []any{int64(999)},
			UnexpectedCount: 1, EvaluatedCount: 2, MissingCount: 1, Mostly: 0.9},
	}
	return &detect.Report{
		DatasetID:  "customers.csv",
		Results:    results,
		Statistics: core.Summarize(2, results),
		StartedAt:  startedAt,
		Duration:   42 * time.Millisecond,
	}
}

func TestSQLiteStore_OpenMigrates(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.MigrationVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	for _, table := range []string{"runs", "files", "columns", "detected_smells"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, table)
		_ = rows.Close()
	}
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	startedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	run, err := store.SaveReport(ctx, sampleDataset(t), sampleReport(startedAt), "/data/customers.csv")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "customers.csv", got.DatasetID)
	assert.Equal(t, "/data/customers.csv", got.Source)
	assert.Equal(t, 3, got.Rows)
	assert.Equal(t, startedAt, got.StartedAt)
	assert.Equal(t, 42*time.Millisecond, got.Duration)
	assert.Equal(t, core.DetectionStatistics{ColumnsEvaluated: 2, ChecksRun: 3, SmellsFound: 3, Failures: 2}, got.Statistics)

	results, err := store.GetRunResults(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, core.Spacing, results[0].SmellType)
	assert.False(t, results[0].Success)
	assert.Equal(t, []any{" Grace"}, results[0].UnexpectedValues)
	assert.Equal(t, "visits", results[2].ColumnName)
	assert.Equal(t, []any{"999"}, results[2].UnexpectedValues)
	assert.Equal(t, 1, results[2].MissingCount)
	assert.InDelta(t, 0.9, results[2].Mostly, 1e-9)
}

func TestSQLiteStore_LoadReport(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	run, err := store.SaveReport(ctx, sampleDataset(t), sampleReport(time.Now()), "")
	require.NoError(t, err)

	_, report, err := LoadReport(ctx, store, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "customers.csv", report.DatasetID)
	assert.Len(t, report.ByColumn(), 2)
	assert.True(t, report.HasFailures())
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := range 3 {
		run, err := store.SaveReport(ctx, sampleDataset(t), sampleReport(base.Add(time.Duration(i)*time.Hour)), "")
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{ids[2], ids[1], ids[0]}},
		{"limited", 2, []string{ids[2], ids[1]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.ListRuns(ctx, tt.limit)
			require.NoError(t, err)
			got := make([]string, len(runs))
			for i, r := range runs {
				got[i] = r.ID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLiteStore_DeleteRun(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	run, err := store.SaveReport(ctx, sampleDataset(t), sampleReport(time.Now()), "")
	require.NoError(t, err)

	require.NoError(t, store.DeleteRun(ctx, run.ID))

	_, err = store.GetRun(ctx, run.ID)
	require.ErrorIs(t, err, ErrRunNotFound)

	var n int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM detected_smells").Scan(&n))
	assert.Zero(t, n, "results cascade with the run")

	require.ErrorIs(t, store.DeleteRun(ctx, run.ID), ErrRunNotFound)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, err := store.GetRun(ctx, "missing")
	require.ErrorIs(t, err, ErrRunNotFound)

	_, err = store.GetRunResults(ctx, "missing")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(nil)

	_, err := store.SaveReport(ctx, sampleDataset(t), sampleReport(time.Now()), "")
	require.Error(t, err)
	_, err = store.ListRuns(ctx, 0)
	require.Error(t, err)
	_, err = store.GetRun(ctx, "x")
	require.Error(t, err)
	require.Error(t, store.DeleteRun(ctx, "x"))
	require.NoError(t, store.Close())
}

func TestSQLiteStore_SaveReportFailures(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		errMsg    string
	}{
		{
			name: "begin fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(assert.AnError)
			},
			errMsg: "failed to begin transaction",
		},
		{
			name: "run insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: "failed to insert run",
		},
		{
			name: "column insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO files").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO columns").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: "failed to insert column name",
		},
		{
			name: "commit fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO files").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO columns").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO columns").WillReturnResult(sqlmock.NewResult(0, 1))
				for range 3 {
					mock.ExpectExec("INSERT INTO detected_smells").WillReturnResult(sqlmock.NewResult(0, 1))
				}
				mock.ExpectCommit().WillReturnError(assert.AnError)
			},
			errMsg: "failed to commit run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.setupMock(mock)

			store := NewWithDB(db, testutil.NewTestLogger(t))
			_, err = store.SaveReport(context.Background(), sampleDataset(t), sampleReport(time.Now()), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteStore_QueryFailures(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	store := NewWithDB(db, nil)

	mock.ExpectQuery("SELECT .* FROM runs").WillReturnError(assert.AnError)
	_, err = store.ListRuns(ctx, 10)
	require.ErrorContains(t, err, "failed to list runs")

	mock.ExpectQuery("SELECT .* FROM runs").WithArgs("x").WillReturnError(assert.AnError)
	_, err = store.GetRun(ctx, "x")
	require.ErrorContains(t, err, "failed to get run")

	mock.ExpectExec("DELETE FROM runs").WithArgs("x").WillReturnError(assert.AnError)
	require.ErrorContains(t, store.DeleteRun(ctx, "x"), "failed to delete run")

	assert.NoError(t, mock.ExpectationsWereMet())
}
