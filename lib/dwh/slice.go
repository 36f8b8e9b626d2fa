// Package dwh implements the partitioned table IO core: table slice
// addressing, the delete-then-insert write protocol, and the typed read
// protocol against a warehouse store.
package dwh

import (
	"fmt"
	"strings"

	"github.com/quarry-data/quarry/lib/partition"
	"github.com/quarry-data/quarry/lib/sql"
	"github.com/quarry-data/quarry/lib/stringutil"
	"github.com/quarry-data/quarry/lib/typing"
)

// TableSlice addresses a subset of a table's rows: the fully qualified table,
// an optional column projection, and the partition dimensions whose conjunction
// selects the affected rows. An empty dimension list addresses the whole table.
// Slices are constructed per IO call and never cached.
type TableSlice struct {
	Database string
	Schema   string
	Table    string
	// Columns is the projection for reads; empty means all columns.
	Columns             []string
	PartitionDimensions []partition.Dimension
}

func (t TableSlice) Validate() error {
	if stringutil.Empty(t.Database, t.Schema, t.Table) {
		return fmt.Errorf("database, schema and table must all be set, got: %q.%q.%q", t.Database, t.Schema, t.Table)
	}

	for _, dimension := range t.PartitionDimensions {
		if dimension.Expr == "" {
			return fmt.Errorf("partition dimension %q has no expression", dimension.Name)
		}

		switch dimension.Kind {
		case partition.TimeWindowKind, partition.CategoricalKind:
		default:
			return fmt.Errorf("partition dimension %q has an unsupported kind: %q", dimension.Name, dimension.Kind)
		}

		if dimension.Kind == partition.CategoricalKind && len(dimension.Keys) == 0 {
			return fmt.Errorf("partition dimension %q has no keys", dimension.Name)
		}
	}

	return nil
}

// FullyQualifiedName returns the dialect-quoted database.schema.table path.
func (t TableSlice) FullyQualifiedName(dialect sql.Dialect) string {
	return fmt.Sprintf("%s.%s.%s",
		sql.EscapeNameIfNecessary(dialect, t.Database),
		sql.EscapeNameIfNecessary(dialect, t.Schema),
		sql.EscapeNameIfNecessary(dialect, t.Table),
	)
}

// SelectStatement returns the row-selecting query for this slice.
func (t TableSlice) SelectStatement(dialect sql.Dialect) string {
	selectList := "*"
	if len(t.Columns) > 0 {
		escapedColumns := make([]string, len(t.Columns))
		for i, column := range t.Columns {
			escapedColumns[i] = sql.EscapeNameIfNecessary(dialect, column)
		}
		selectList = strings.Join(escapedColumns, ", ")
	}

	statement := fmt.Sprintf("SELECT %s FROM %s", selectList, t.FullyQualifiedName(dialect))
	if whereClause, ok := t.whereClause(dialect); ok {
		statement += " WHERE " + whereClause
	}

	return statement
}

// DeleteStatement returns the statement clearing the addressed rows.
// For an unpartitioned slice this deletes the whole table; the write protocol
// uses truncate for that case instead.
func (t TableSlice) DeleteStatement(dialect sql.Dialect) string {
	statement := "DELETE FROM " + t.FullyQualifiedName(dialect)
	if whereClause, ok := t.whereClause(dialect); ok {
		statement += " WHERE " + whereClause
	}

	return statement
}

// whereClause composes the partition predicate: the AND of every dimension's
// predicate. Time windows render as half-open ranges, categorical dimensions
// as equality or IN. An empty time window renders as an empty range, which is
// valid SQL matching zero rows.
func (t TableSlice) whereClause(dialect sql.Dialect) (string, bool) {
	if len(t.PartitionDimensions) == 0 {
		return "", false
	}

	predicates := make([]string, len(t.PartitionDimensions))
	for i, dimension := range t.PartitionDimensions {
		predicates[i] = dimensionPredicate(dialect, dimension)
	}

	return strings.Join(predicates, " AND "), true
}

func dimensionPredicate(dialect sql.Dialect, dimension partition.Dimension) string {
	switch dimension.Kind {
	case partition.TimeWindowKind:
		return fmt.Sprintf("%s >= %s AND %s < %s",
			dimension.Expr,
			dialect.QuoteLiteral(dimension.Window.Start.UTC().Format(typing.TimestampLayout)),
			dimension.Expr,
			dialect.QuoteLiteral(dimension.Window.End.UTC().Format(typing.TimestampLayout)),
		)
	default:
		if len(dimension.Keys) == 1 {
			return fmt.Sprintf("%s = %s", dimension.Expr, dialect.QuoteLiteral(dimension.Keys[0]))
		}

		quotedKeys := make([]string, len(dimension.Keys))
		for i, key := range dimension.Keys {
			quotedKeys[i] = dialect.QuoteLiteral(key)
		}
		return fmt.Sprintf("%s IN (%s)", dimension.Expr, strings.Join(quotedKeys, ", "))
	}
}

// String renders the slice for error messages and logs.
func (t TableSlice) String() string {
	out := fmt.Sprintf("%s.%s.%s", t.Database, t.Schema, t.Table)
	if len(t.PartitionDimensions) > 0 {
		names := make([]string, len(t.PartitionDimensions))
		for i, dimension := range t.PartitionDimensions {
			names[i] = dimension.Name
		}
		out += fmt.Sprintf(" (partitioned by %s)", strings.Join(names, ", "))
	}

	return out
}
