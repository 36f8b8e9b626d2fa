package sql

import "strings"

// NeedsQuoting is the shared rule set behind [Dialect.NeedsQuoting]:
// an identifier must be quoted when it starts with a digit, contains characters
// outside [A-Za-z0-9_], or matches one of the dialect's reserved keywords.
// Keyword comparison is case-insensitive.
func NeedsQuoting(name string, reservedKeywords []string) bool {
	if name == "" {
		return false
	}

	if name[0] >= '0' && name[0] <= '9' {
		return true
	}

	for _, char := range name {
		if !legalIdentifierChar(char) {
			return true
		}
	}

	lowered := strings.ToLower(name)
	for _, keyword := range reservedKeywords {
		if lowered == keyword {
			return true
		}
	}

	return false
}

func legalIdentifierChar(char rune) bool {
	switch {
	case char >= 'a' && char <= 'z':
		return true
	case char >= 'A' && char <= 'Z':
		return true
	case char >= '0' && char <= '9':
		return true
	case char == '_':
		return true
	default:
		return false
	}
}
