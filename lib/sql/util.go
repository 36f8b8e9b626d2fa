package sql

import (
	"fmt"
	"strings"

	"github.com/quarry-data/quarry/lib/stringutil"
)

// QuoteLiteral wraps a value in single quotes, doubling any embedded quotes.
// This is the standard-conforming form; Postgres and DuckDB use it.
func QuoteLiteral(value string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(value, "'", "''"))
}

// QuoteLiteralBackslash wraps a value in single quotes using backslash escaping,
// for dialects where backslash is an escape character inside string literals.
func QuoteLiteralBackslash(value string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(stringutil.EscapeBackslashes(value), "'", `\'`))
}

// ParseDataTypeDefinition splits a column type like NUMBER(38, 0) or VARCHAR(255)
// into its base type and parameters.
func ParseDataTypeDefinition(dataType string) (string, []string, error) {
	indexOfParen := strings.Index(dataType, "(")
	if indexOfParen < 0 {
		return strings.TrimSpace(dataType), nil, nil
	}

	if !strings.HasSuffix(dataType, ")") {
		return "", nil, fmt.Errorf("malformed data type definition: %q", dataType)
	}

	baseType := strings.TrimSpace(dataType[:indexOfParen])
	rawParams := dataType[indexOfParen+1 : len(dataType)-1]

	var params []string
	for _, param := range strings.Split(rawParams, ",") {
		params = append(params, strings.TrimSpace(param))
	}

	return baseType, params, nil
}
