package sql

import (
	"fmt"
	"strings"
)

// DefaultBuildCreateTableQuery returns the standard CREATE TABLE IF NOT EXISTS query.
func DefaultBuildCreateTableQuery(fqTableName string, colSQLParts []string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", fqTableName, strings.Join(colSQLParts, ","))
}

// DefaultBuildTruncateTableQuery returns the standard TRUNCATE TABLE query.
// Most dialects use this exact format; Snowflake adds IF EXISTS.
func DefaultBuildTruncateTableQuery(fqTableName string) string {
	return "TRUNCATE TABLE " + fqTableName
}
