package dialect

import (
	"fmt"
	"strings"

	"github.com/quarry-data/quarry/lib/sql"
	"github.com/quarry-data/quarry/lib/typing"
)

// https://www.postgresql.org/docs/current/sql-keywords-appendix.html
var reservedKeywords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc",
	"asymmetric", "authorization", "between", "binary", "both", "by",
	"case", "cast", "check", "collate", "column", "concurrently",
	"constraint", "create", "cross", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "default", "deferrable", "desc", "distinct", "do",
	"else", "end", "except", "false", "fetch", "for", "foreign", "freeze",
	"from", "full", "grant", "group", "having", "ilike", "in", "initially",
	"inner", "intersect", "into", "is", "isnull", "join", "lateral",
	"leading", "left", "like", "limit", "localtime", "localtimestamp",
	"natural", "not", "notnull", "null", "offset", "on", "only", "or",
	"order", "outer", "overlaps", "placing", "primary", "references",
	"returning", "right", "select", "session_user", "similar", "some",
	"symmetric", "table", "tablesample", "then", "to", "trailing", "true",
	"union", "unique", "user", "using", "variadic", "verbose", "when",
	"where", "window", "with",
}

type PostgresDialect struct{}

func (PostgresDialect) QuoteIdentifier(identifier string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(identifier, `"`, `""`))
}

func (PostgresDialect) NeedsQuoting(identifier string) bool {
	return sql.NeedsQuoting(identifier, reservedKeywords)
}

// With standard_conforming_strings (the default), backslash is not an escape
// character; embedded quotes are doubled instead.
func (PostgresDialect) QuoteLiteral(value string) string {
	return sql.QuoteLiteral(value)
}

func (PostgresDialect) DataTypeForKind(kd typing.KindDetails) (string, error) {
	switch kd.Kind {
	case typing.String.Kind:
		return "text", nil
	case typing.Integer.Kind:
		return "bigint", nil
	case typing.Float.Kind:
		return "double precision", nil
	case typing.Boolean.Kind:
		return "boolean", nil
	case typing.Date.Kind:
		return "date", nil
	case typing.Time.Kind:
		return "time", nil
	case typing.TimestampTZ.Kind:
		return "timestamp with time zone", nil
	default:
		return "", fmt.Errorf("unsupported kind: %q", kd.Kind)
	}
}

func (PostgresDialect) KindForDataType(dataType string) (typing.KindDetails, error) {
	baseType, _, err := sql.ParseDataTypeDefinition(strings.ToLower(dataType))
	if err != nil {
		return typing.Invalid, err
	}

	switch baseType {
	case "text", "varchar", "character varying", "character", "char", "bpchar", "name":
		return typing.String, nil
	case "smallint", "integer", "bigint", "int2", "int4", "int8", "serial", "bigserial":
		return typing.Integer, nil
	case "real", "double precision", "float4", "float8", "numeric", "decimal":
		return typing.Float, nil
	case "boolean", "bool":
		return typing.Boolean, nil
	case "date":
		return typing.Date, nil
	case "time", "time without time zone", "time with time zone", "timetz":
		return typing.Time, nil
	case "timestamp", "timestamptz", "timestamp without time zone", "timestamp with time zone":
		return typing.TimestampTZ, nil
	default:
		return typing.Invalid, nil
	}
}

func (PostgresDialect) BuildCreateTableQuery(fqTableName string, colSQLParts []string) string {
	return sql.DefaultBuildCreateTableQuery(fqTableName, colSQLParts)
}

func (PostgresDialect) BuildTruncateTableQuery(fqTableName string) string {
	return sql.DefaultBuildTruncateTableQuery(fqTableName)
}
