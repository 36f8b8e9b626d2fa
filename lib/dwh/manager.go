package dwh

import (
	"context"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/quarry-data/quarry/lib/arrowutil"
	"github.com/quarry-data/quarry/lib/db"
	"github.com/quarry-data/quarry/lib/sql"
	"github.com/quarry-data/quarry/lib/typing"
	"github.com/quarry-data/quarry/lib/typing/values"
)

const defaultInsertBatchRows = 1_000

// Manager implements the write/merge and read protocols for one dialect.
// It holds no state between calls; the store is passed per operation and is
// the caller's scoped connection.
type Manager struct {
	dialect         sql.Dialect
	insertBatchRows int
}

func NewManager(dialect sql.Dialect, insertBatchRows int) Manager {
	if insertBatchRows <= 0 {
		insertBatchRows = defaultInsertBatchRows
	}

	return Manager{dialect: dialect, insertBatchRows: insertBatchRows}
}

// ColumnDescription is the inferred schema of one written or read column.
// Name is the raw column name; statement builders quote it as needed.
type ColumnDescription struct {
	Name     string
	Kind     typing.KindDetails
	DataType string
}

// WriteResult carries observability metadata back to the caller.
type WriteResult struct {
	RowCount int64
	Columns  []ColumnDescription
}

// Metadata renders the result as structured key-value pairs.
func (w WriteResult) Metadata() map[string]any {
	columns := make([]map[string]string, len(w.Columns))
	for i, column := range w.Columns {
		columns[i] = map[string]string{"name": column.Name, "type": column.Kind.Kind}
	}

	return map[string]any{
		"row_count":         w.RowCount,
		"dataframe_columns": columns,
	}
}

// Write persists a dataframe into the addressed slice with overwrite-by-partition
// semantics: the table is created if missing, rows matching the slice's partition
// predicate are deleted, and the payload is inserted. An unpartitioned slice is
// replaced wholesale (truncate-then-load). Delete and insert run in one
// transaction where the store supports it; if the store auto-commits, a failed
// insert leaves the partition cleared and the error lets the caller re-run the
// full write, which is safe to repeat.
func (m Manager) Write(ctx context.Context, store db.Store, slice TableSlice, record arrow.Record) (WriteResult, error) {
	if err := slice.Validate(); err != nil {
		return WriteResult{}, fmt.Errorf("invalid table slice: %w", err)
	}

	columns, err := m.describeColumns(record.Schema())
	if err != nil {
		return WriteResult{}, err
	}

	fqTableName := slice.FullyQualifiedName(m.dialect)

	colSQLParts := make([]string, len(columns))
	for i, column := range columns {
		colSQLParts[i] = sql.EscapeNameIfNecessary(m.dialect, column.Name) + " " + column.DataType
	}

	createQuery := m.dialect.BuildCreateTableQuery(fqTableName, colSQLParts)
	if _, err = store.ExecContext(ctx, createQuery); err != nil {
		return WriteResult{}, fmt.Errorf("failed to create table for slice %s, query: %q: %w", slice, createQuery, err)
	}

	var statements []string
	if len(slice.PartitionDimensions) > 0 {
		statements = append(statements, slice.DeleteStatement(m.dialect))
	} else {
		statements = append(statements, m.dialect.BuildTruncateTableQuery(fqTableName))
	}

	insertStatements, err := m.buildInsertStatements(fqTableName, columns, record)
	if err != nil {
		return WriteResult{}, fmt.Errorf("failed to build insert statements for slice %s: %w", slice, err)
	}

	statements = append(statements, insertStatements...)
	if err = db.ExecStatementsInTransaction(ctx, store, statements); err != nil {
		return WriteResult{}, fmt.Errorf("failed to write to slice %s: %w", slice, err)
	}

	return WriteResult{RowCount: record.NumRows(), Columns: columns}, nil
}

// Read executes the slice's select statement and materializes the result into
// a dataframe, mapping the store's reported column types back through the
// dialect. An empty result is a zero-row record with the correct schema.
func (m Manager) Read(ctx context.Context, store db.Store, slice TableSlice) (arrow.Record, error) {
	if err := slice.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table slice: %w", err)
	}

	query := slice.SelectStatement(m.dialect)
	rows, err := store.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read slice %s, query: %q: %w", slice, query, err)
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to describe result columns for slice %s: %w", slice, err)
	}

	names := make([]string, len(columnTypes))
	kinds := make([]typing.KindDetails, len(columnTypes))
	for i, columnType := range columnTypes {
		kind, err := m.dialect.KindForDataType(columnType.DatabaseTypeName())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", columnType.Name(), err)
		}

		if kind == typing.Invalid {
			return nil, fmt.Errorf("column %q has an unrecognized data type: %q", columnType.Name(), columnType.DatabaseTypeName())
		}

		names[i] = columnType.Name()
		kinds[i] = kind
	}

	schema, err := arrowutil.NewSchema(names, kinds)
	if err != nil {
		return nil, err
	}

	var scannedRows [][]any
	for rows.Next() {
		row := make([]any, len(columnTypes))
		rowPointers := make([]any, len(columnTypes))
		for i := range row {
			rowPointers[i] = &row[i]
		}

		if err = rows.Scan(rowPointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row for slice %s: %w", slice, err)
		}

		scannedRows = append(scannedRows, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows for slice %s: %w", slice, err)
	}

	record, err := arrowutil.RecordFromRows(schema, scannedRows)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize rows for slice %s: %w", slice, err)
	}

	return record, nil
}

func (m Manager) describeColumns(schema *arrow.Schema) ([]ColumnDescription, error) {
	columns := make([]ColumnDescription, schema.NumFields())
	for i := range schema.NumFields() {
		field := schema.Field(i)
		kind, err := arrowutil.KindForField(field)
		if err != nil {
			return nil, err
		}

		dataType, err := m.dialect.DataTypeForKind(kind)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name, err)
		}

		columns[i] = ColumnDescription{
			Name:     field.Name,
			Kind:     kind,
			DataType: dataType,
		}
	}

	return columns, nil
}

func (m Manager) buildInsertStatements(fqTableName string, columns []ColumnDescription, record arrow.Record) ([]string, error) {
	totalRows := int(record.NumRows())
	if totalRows == 0 {
		return nil, nil
	}

	columnNames := make([]string, len(columns))
	for i, column := range columns {
		columnNames[i] = sql.EscapeNameIfNecessary(m.dialect, column.Name)
	}
	insertPrefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", fqTableName, strings.Join(columnNames, ", "))

	var statements []string
	var valueTuples []string
	for rowIdx := range totalRows {
		literals := make([]string, len(columns))
		for colIdx, column := range columns {
			value, err := arrowutil.ValueAt(record, colIdx, rowIdx)
			if err != nil {
				return nil, err
			}

			literal, err := values.ToSQLLiteral(m.dialect, value, column.Kind)
			if err != nil {
				return nil, fmt.Errorf("column %q, row %d: %w", column.Name, rowIdx, err)
			}

			literals[colIdx] = literal
		}

		valueTuples = append(valueTuples, "("+strings.Join(literals, ", ")+")")
		if len(valueTuples) == m.insertBatchRows {
			statements = append(statements, insertPrefix+strings.Join(valueTuples, ", "))
			valueTuples = nil
		}
	}

	if len(valueTuples) > 0 {
		statements = append(statements, insertPrefix+strings.Join(valueTuples, ", "))
	}

	return statements, nil
}
