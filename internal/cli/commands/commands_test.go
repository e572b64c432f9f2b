package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datasmell/internal/cli/testutil"
	"github.com/leapstack-labs/datasmell/internal/state"
	itestutil "github.com/leapstack-labs/datasmell/internal/testutil"
	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/detect"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

func TestCommandDefinitions(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewDetectCommand(), "detect <file>...", []string{"smell", "column", "disable", "workers", "sample-size", "max-rows", "keep-index", "no-save", "failures-only"}},
		{NewWatchCommand(), "watch <file>...", []string{"smell", "column", "debounce", "no-save", "failures-only"}},
		{NewSmellsCommand(), "smells [smell-id]", []string{"category", "type"}},
		{NewHistoryCommand(), "history", []string{"limit"}},
		{NewShowCommand(), "show <run-id>", []string{"failures-only"}},
		{NewServeCommand("test"), "serve", []string{"addr", "read-timeout", "no-save"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func sampleReport() *detect.Report {
	results := []core.DetectionResult{
		{ColumnName: "name", SmellType: core.Spacing, Success: false, UnexpectedValues: []any{" Grace", "Linus  T"}, UnexpectedCount: 2, EvaluatedCount: 5, Mostly: 0.9},
		{ColumnName: "name", SmellType: core.LongDataValue, Success: true, EvaluatedCount: 5, Mostly: 0.9},
		{ColumnName: "code", SmellType: core.DummyValue, Success: true, UnexpectedValues: []any{int64(1), int64(999), int64(999)}, UnexpectedCount: 3, EvaluatedCount: 5, Mostly: 0.1},
	}
	return &detect.Report{
		DatasetID:  "customers",
		Results:    results,
		Statistics: core.Summarize(2, results),
	}
}

func TestRenderReport_Markdown(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	run := &state.Run{ID: "run-1"}

	require.NoError(t, renderReport(tr.Renderer, run, sampleReport(), reportOptions{}))

	out := tr.Output()
	assert.Contains(t, out, "# Data smells: customers")
	assert.Contains(t, out, "Run `run-1`")
	assert.Contains(t, out, "| Column | Smell | Status | Unexpected | Examples |")
	assert.Contains(t, out, "**smelly**")
	assert.Contains(t, out, `" Grace", "Linus  T"`)
	assert.Contains(t, out, "2 columns, 3 checks, 1 failing, 5 flagged values")
	testutil.AssertValidMarkdown(t, out)
	testutil.AssertNoANSI(t, out)
}

func TestRenderReport_Text(t *testing.T) {
	tr := testutil.NewTestRenderer("text", false)

	require.NoError(t, renderReport(tr.Renderer, nil, sampleReport(), reportOptions{FailuresOnly: true}))

	out := tr.Output()
	assert.Contains(t, out, "Data smells: customers")
	assert.Contains(t, out, "✗ Spacing Smell")
	assert.Contains(t, out, "2/5 (40.0%, mostly 0.9)")
	assert.NotContains(t, out, "Dummy Value Smell")
	assert.NotContains(t, out, "Run ")
}

func TestRenderReport_JSONFailuresOnlyEmpty(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	report := &detect.Report{DatasetID: "clean"}

	require.NoError(t, renderReport(tr.Renderer, nil, report, reportOptions{FailuresOnly: true}))
	assert.Contains(t, tr.Output(), `"columns": []`)
	assert.NotContains(t, tr.Output(), `"run"`)
}

func TestFormatSamples(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   string
	}{
		{"empty", nil, ""},
		{"strings are quoted", []any{" a", "b "}, `" a", "b "`},
		{"numbers are not", []any{int64(999), 1.5}, "999, 1.5"},
		{"truncated", []any{"a", "b", "c", "d", "e", "f"}, `"a", "b", "c", "d", "e", ...`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSamples(tt.values))
		})
	}
}

func TestFilterInfos(t *testing.T) {
	infos := smell.Default().Infos()

	got, err := filterInfos(infos, &SmellsOptions{Type: "int"})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, info := range got {
		assert.Contains(t, info.SupportedTypes, "INT")
	}

	got, err = filterInfos(infos, &SmellsOptions{Category: "Believability"})
	require.NoError(t, err)
	for _, info := range got {
		assert.Equal(t, "believability", info.Category)
	}

	_, err = filterInfos(infos, &SmellsOptions{Type: "blob"})
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestRenderRuns_Empty(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	require.NoError(t, renderRuns(tr.Renderer, nil))
	assert.Equal(t, "[]\n", tr.Output())
}

func TestWatchFiles_DebouncesWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file watcher test in short mode")
	}

	dir := t.TempDir()
	watched := filepath.Join(dir, "data.csv")
	other := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(watched, []byte("a\n1\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{watched}, 50*time.Millisecond, itestutil.NewTestLogger(t), func(p string) {
			changes <- p
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	for i := range 3 {
		require.NoError(t, os.WriteFile(watched, []byte("a\n"+string(rune('2'+i))+"\n"), 0o600))
	}

	select {
	case p := <-changes:
		assert.Equal(t, watched, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// The burst of writes is reported once.
	select {
	case p := <-changes:
		t.Fatalf("unexpected second change for %s", p)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}
