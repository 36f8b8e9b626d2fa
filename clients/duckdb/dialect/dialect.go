package dialect

import (
	"fmt"
	"strings"

	"github.com/quarry-data/quarry/lib/sql"
	"github.com/quarry-data/quarry/lib/typing"
)

// https://duckdb.org/docs/sql/keywords_and_identifiers
var reservedKeywords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc",
	"between", "both", "by", "case", "cast", "check", "collate", "column",
	"constraint", "create", "default", "desc", "describe", "distinct", "do",
	"else", "end", "except", "false", "fetch", "for", "foreign", "from",
	"group", "having", "in", "initially", "intersect", "into", "lateral",
	"leading", "limit", "not", "null", "offset", "on", "only", "or",
	"order", "pivot", "primary", "references", "returning", "select",
	"show", "some", "summarize", "table", "then", "to", "trailing", "true",
	"union", "unique", "unpivot", "using", "variadic", "when", "where",
	"window", "with",
}

type DuckDBDialect struct{}

func (DuckDBDialect) QuoteIdentifier(identifier string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(identifier, `"`, `""`))
}

func (DuckDBDialect) NeedsQuoting(identifier string) bool {
	return sql.NeedsQuoting(identifier, reservedKeywords)
}

// DuckDB is standard-conforming: quotes are doubled, backslashes are ordinary
// characters inside string literals.
func (DuckDBDialect) QuoteLiteral(value string) string {
	return sql.QuoteLiteral(value)
}

func (DuckDBDialect) DataTypeForKind(kd typing.KindDetails) (string, error) {
	switch kd.Kind {
	case typing.String.Kind:
		return "varchar", nil
	case typing.Integer.Kind:
		return "bigint", nil
	case typing.Float.Kind:
		return "double", nil
	case typing.Boolean.Kind:
		return "boolean", nil
	case typing.Date.Kind:
		return "date", nil
	case typing.Time.Kind:
		return "time", nil
	case typing.TimestampTZ.Kind:
		return "timestamp", nil
	default:
		return "", fmt.Errorf("unsupported kind: %q", kd.Kind)
	}
}

func (DuckDBDialect) KindForDataType(dataType string) (typing.KindDetails, error) {
	baseType, _, err := sql.ParseDataTypeDefinition(strings.ToLower(dataType))
	if err != nil {
		return typing.Invalid, err
	}

	switch baseType {
	case "varchar", "char", "text", "string", "bpchar":
		return typing.String, nil
	case "tinyint", "smallint", "integer", "int", "bigint", "hugeint",
		"utinyint", "usmallint", "uinteger", "ubigint":
		return typing.Integer, nil
	case "real", "float", "double", "decimal", "numeric":
		return typing.Float, nil
	case "boolean", "bool":
		return typing.Boolean, nil
	case "date":
		return typing.Date, nil
	case "time":
		return typing.Time, nil
	case "timestamp", "datetime", "timestamptz",
		"timestamp with time zone", "timestamp_s", "timestamp_ms", "timestamp_ns":
		return typing.TimestampTZ, nil
	default:
		return typing.Invalid, nil
	}
}

func (DuckDBDialect) BuildCreateTableQuery(fqTableName string, colSQLParts []string) string {
	return sql.DefaultBuildCreateTableQuery(fqTableName, colSQLParts)
}

func (DuckDBDialect) BuildTruncateTableQuery(fqTableName string) string {
	return sql.DefaultBuildTruncateTableQuery(fqTableName)
}
