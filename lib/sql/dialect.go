package sql

import "github.com/quarry-data/quarry/lib/typing"

// Dialect abstracts the per-warehouse SQL surface that the write/read protocols consume.
type Dialect interface {
	// QuoteIdentifier always returns the quoted form of an identifier,
	// applying the dialect's case convention.
	QuoteIdentifier(identifier string) string
	// NeedsQuoting reports whether an unquoted identifier would be rejected or
	// reinterpreted by the dialect (reserved word, leading digit, illegal characters).
	NeedsQuoting(identifier string) bool
	// QuoteLiteral renders a string value as a literal in the dialect's escaping
	// style, e.g. quote doubling vs backslash escapes.
	QuoteLiteral(value string) string
	// DataTypeForKind maps a kind to the dialect's DDL column type.
	DataTypeForKind(kd typing.KindDetails) (string, error)
	// KindForDataType maps a column type reported by the store back to a kind.
	KindForDataType(dataType string) (typing.KindDetails, error)
	BuildCreateTableQuery(fqTableName string, colSQLParts []string) string
	BuildTruncateTableQuery(fqTableName string) string
}

// EscapeNameIfNecessary quotes an identifier only when the dialect requires it.
// Quoting is idempotent: identifiers that already carry the dialect's quote
// character are returned unchanged.
func EscapeNameIfNecessary(dialect Dialect, name string) string {
	if isQuoted(name) {
		return name
	}

	if dialect.NeedsQuoting(name) {
		return dialect.QuoteIdentifier(name)
	}

	return name
}

func isQuoted(name string) bool {
	if len(name) < 2 {
		return false
	}

	switch name[0] {
	case '"', '`':
		return name[len(name)-1] == name[0]
	default:
		return false
	}
}
