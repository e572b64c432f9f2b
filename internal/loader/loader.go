// Package loader reads datasets from files into core.Dataset values.
//
// Tabular files (CSV, TSV, Parquet, JSON records) are read through an
// in-memory DuckDB connection. YAML dataset documents list columns and
// their values inline and are decoded directly.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/leapstack-labs/datasmell/pkg/core"
)

// Format identifies how a dataset file is read.
type Format string

// Supported formats.
const (
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatParquet  Format = "parquet"
	FormatJSON     Format = "json"
	FormatDocument Format = "document"
)

// Options control loading.
type Options struct {
	// Logger receives debug output. Nil discards.
	Logger *slog.Logger

	// KeepIndexColumns keeps leading unnamed index columns such as "Unnamed: 0".
	KeepIndexColumns bool

	// MaxRows limits how many rows are read from tabular files. Zero reads all.
	MaxRows int
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatDocument, nil
	default:
		return "", &UnsupportedFormatError{Path: path, Ext: ext}
	}
}

// SupportedExtensions lists the file extensions Load accepts.
func SupportedExtensions() []string {
	return []string{".csv", ".tsv", ".tab", ".parquet", ".pq", ".json", ".jsonl", ".ndjson", ".yaml", ".yml"}
}

// UnsupportedFormatError is returned for files with an unknown extension.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported dataset format %q for %s\nSupported extensions: %s",
		e.Ext, e.Path, strings.Join(SupportedExtensions(), ", "))
}

// Load reads the dataset at path. The dataset ID is the file's base name.
func Load(ctx context.Context, path string, opts Options) (*core.Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}

	opts.logger().Debug("loading dataset", slog.String("path", path), slog.String("format", string(format)))

	var (
		id      = filepath.Base(path)
		columns []*core.Column
	)
	if format == FormatDocument {
		f, err := os.Open(path) //nolint:gosec // path supplied by the user
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset: %w", err)
		}
		defer func() { _ = f.Close() }()

		doc, err := ParseDocument(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if doc.ID != "" {
			id = doc.ID
		}
		columns, err = doc.Columns()
		if err != nil {
			return nil, fmt.Errorf("invalid dataset document %s: %w", path, err)
		}
	} else {
		columns, err = readTabular(ctx, path, format, opts)
		if err != nil {
			return nil, err
		}
	}

	if !opts.KeepIndexColumns {
		columns = dropIndexColumns(columns)
	}
	return core.NewDataset(id, columns...)
}

// indexColumnPattern matches names given to a leading unnamed index column.
var indexColumnPattern = regexp.MustCompile(`^(Unnamed: \d+|column0+|)$`)

// dropIndexColumns removes a leading index column left by dataframe exports.
func dropIndexColumns(columns []*core.Column) []*core.Column {
	if len(columns) > 0 && indexColumnPattern.MatchString(columns[0].Name()) {
		return columns[1:]
	}
	return columns
}
