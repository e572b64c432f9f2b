package loader

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/datasmell/pkg/core"
)

// tableName is the scratch table each load materializes.
const tableName = "dataset"

// columnInfo describes a column of the scratch table.
type columnInfo struct {
	Name string
	Type string
}

// readTabular loads a file through an in-memory DuckDB connection.
func readTabular(ctx context.Context, path string, format Format, opts Options) ([]*core.Column, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	query := fmt.Sprintf("CREATE TABLE %s AS SELECT * FROM %s", tableName, readerExpr(format, absPath))
	if opts.MaxRows > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.MaxRows)
	}
	if _, err := db.ExecContext(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	infos, err := tableColumns(ctx, db)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("dataset schema", slog.String("path", path), slog.Int("columns", len(infos)))

	return scanColumns(ctx, db, infos, format)
}

// readerExpr builds the DuckDB table function reading the file. Delimited
// files are read as text so that values keep the spelling they have on disk.
func readerExpr(format Format, absPath string) string {
	quoted := quoteLiteral(absPath)
	switch format {
	case FormatTSV:
		return fmt.Sprintf("read_csv_auto(%s, header=true, delim='\t', all_varchar=true)", quoted)
	case FormatParquet:
		return fmt.Sprintf("read_parquet(%s)", quoted)
	case FormatJSON:
		return fmt.Sprintf("read_json_auto(%s)", quoted)
	default:
		return fmt.Sprintf("read_csv_auto(%s, header=true, all_varchar=true)", quoted)
	}
}

// tableColumns lists the scratch table's columns in ordinal order.
func tableColumns(ctx context.Context, db *sql.DB) ([]columnInfo, error) {
	query := `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position
	`
	rows, err := db.QueryContext(ctx, query, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []columnInfo
	for rows.Next() {
		var info columnInfo
		if err := rows.Scan(&info.Name, &info.Type); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	return infos, nil
}

// scanColumns reads every row and splits values into typed columns.
func scanColumns(ctx context.Context, db *sql.DB, infos []columnInfo, format Format) ([]*core.Column, error) {
	if len(infos) == 0 {
		return nil, nil
	}

	selects := make([]string, len(infos))
	types := make([]core.ColumnDataType, len(infos))
	for i, info := range infos {
		types[i] = duckTypeToColumnType(info.Type)
		selects[i] = selectExpr(info, types[i])
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), tableName) //nolint:gosec // identifiers are quoted
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	values := make([][]any, len(infos))
	dest := make([]any, len(infos))
	ptrs := make([]any, len(infos))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range dest {
			values[i] = append(values[i], normalizeScanned(v))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	columns := make([]*core.Column, len(infos))
	for i, info := range infos {
		dataType, vals := types[i], values[i]
		if format == FormatCSV || format == FormatTSV {
			dataType, vals = TagText(vals)
		}
		columns[i] = core.NewColumn(info.Name, dataType, vals)
	}
	return columns, nil
}

// selectExpr casts types without a plain Go representation.
func selectExpr(info columnInfo, t core.ColumnDataType) string {
	ident := quoteIdent(info.Name)
	switch {
	case t == core.TypeNumeric:
		return fmt.Sprintf("CAST(%s AS DOUBLE) AS %s", ident, ident)
	case t == core.TypeString || t == core.TypeUnknown:
		return fmt.Sprintf("CAST(%s AS VARCHAR) AS %s", ident, ident)
	default:
		return ident
	}
}

// duckTypeToColumnType maps a DuckDB type name to a column data type.
func duckTypeToColumnType(duckType string) core.ColumnDataType {
	t := strings.ToUpper(duckType)
	switch {
	case t == "VARCHAR" || t == "TEXT" || t == "UUID":
		return core.TypeString
	case t == "BIGINT" || t == "INTEGER" || t == "SMALLINT" || t == "TINYINT" ||
		t == "UINTEGER" || t == "USMALLINT" || t == "UTINYINT":
		return core.TypeInt
	case t == "DOUBLE" || t == "FLOAT" || t == "REAL":
		return core.TypeFloat
	case strings.HasPrefix(t, "DECIMAL") || t == "HUGEINT" || t == "UBIGINT" || t == "UHUGEINT":
		return core.TypeNumeric
	case t == "BOOLEAN":
		return core.TypeBoolean
	case t == "DATE" || t == "TIME" || strings.HasPrefix(t, "TIMESTAMP"):
		return core.TypeDatetime
	default:
		return core.TypeUnknown
	}
}

// normalizeScanned converts driver values to the raw value kinds of core.Column.
func normalizeScanned(v any) any {
	switch x := v.(type) {
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC()
	default:
		return v
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
