package dialect

import (
	"fmt"
	"strings"

	"github.com/quarry-data/quarry/lib/sql"
	"github.com/quarry-data/quarry/lib/typing"
)

// https://docs.snowflake.com/en/sql-reference/reserved-keywords
var reservedKeywords = []string{
	"all", "alter", "and", "any", "as", "asc", "between", "by", "case",
	"cast", "check", "column", "connect", "create", "cross", "current",
	"current_date", "current_time", "current_timestamp", "current_user",
	"delete", "desc", "distinct", "drop", "else", "exists", "false", "for",
	"from", "full", "grant", "group", "having", "ilike", "in", "increment",
	"inner", "insert", "intersect", "into", "is", "join", "lateral",
	"left", "like", "limit", "localtime", "localtimestamp", "minus",
	"natural", "not", "null", "of", "on", "or", "order", "qualify",
	"regexp", "revoke", "right", "rlike", "row", "rows", "sample",
	"select", "set", "some", "start", "table", "tablesample", "then",
	"to", "trigger", "true", "try_cast", "union", "unique", "update",
	"using", "values", "when", "whenever", "where", "with",
}

type SnowflakeDialect struct{}

// QuoteIdentifier uppercases before quoting so quoted identifiers resolve the
// same as their unquoted form would.
func (SnowflakeDialect) QuoteIdentifier(identifier string) string {
	return fmt.Sprintf(`"%s"`, strings.ToUpper(identifier))
}

func (SnowflakeDialect) NeedsQuoting(identifier string) bool {
	return sql.NeedsQuoting(identifier, reservedKeywords)
}

// Snowflake treats backslash as an escape character inside string literals, so
// backslashes must be doubled and quotes backslash-escaped.
// https://docs.snowflake.com/en/sql-reference/data-types-text#escape-sequences-in-single-quoted-string-constants
func (SnowflakeDialect) QuoteLiteral(value string) string {
	return sql.QuoteLiteralBackslash(value)
}

func (SnowflakeDialect) DataTypeForKind(kd typing.KindDetails) (string, error) {
	switch kd.Kind {
	case typing.String.Kind:
		return "string", nil
	case typing.Integer.Kind:
		return "integer", nil
	case typing.Float.Kind:
		return "float", nil
	case typing.Boolean.Kind:
		return "boolean", nil
	case typing.Date.Kind:
		return "date", nil
	case typing.Time.Kind:
		return "time", nil
	case typing.TimestampTZ.Kind:
		// We are not using TIMESTAMP_NTZ because Snowflake will otherwise try to
		// coerce it through the session time zone on joins.
		return "timestamp_tz", nil
	default:
		return "", fmt.Errorf("unsupported kind: %q", kd.Kind)
	}
}

// KindForDataType converts a Snowflake type to a kind.
// https://docs.snowflake.com/en/sql-reference/intro-summary-data-types
func (SnowflakeDialect) KindForDataType(dataType string) (typing.KindDetails, error) {
	baseType, params, err := sql.ParseDataTypeDefinition(strings.ToLower(dataType))
	if err != nil {
		return typing.Invalid, err
	}

	switch baseType {
	case "number", "numeric", "decimal":
		// NUMBER(p, 0) is integral; any scale makes it a float.
		if len(params) == 2 && params[1] == "0" {
			return typing.Integer, nil
		}
		return typing.Float, nil
	case "float", "float4", "float8", "double", "double precision", "real":
		return typing.Float, nil
	case "int", "integer", "bigint", "smallint", "tinyint", "byteint", "fixed":
		return typing.Integer, nil
	case "varchar", "char", "character", "string", "text":
		return typing.String, nil
	case "boolean":
		return typing.Boolean, nil
	case "datetime", "timestamp", "timestamp_ltz", "timestamp_ntz", "timestamp_tz", "timestampltz", "timestampntz", "timestamptz":
		return typing.TimestampTZ, nil
	case "time":
		return typing.Time, nil
	case "date":
		return typing.Date, nil
	default:
		return typing.Invalid, nil
	}
}

func (SnowflakeDialect) BuildCreateTableQuery(fqTableName string, colSQLParts []string) string {
	return sql.DefaultBuildCreateTableQuery(fqTableName, colSQLParts)
}

func (SnowflakeDialect) BuildTruncateTableQuery(fqTableName string) string {
	return "TRUNCATE TABLE IF EXISTS " + fqTableName
}
