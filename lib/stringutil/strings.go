package stringutil

import "strings"

func EscapeBackslashes(value string) string {
	return strings.ReplaceAll(value, `\`, `\\`)
}

func Empty(values ...string) bool {
	for _, value := range values {
		if value == "" {
			return true
		}
	}

	return false
}
