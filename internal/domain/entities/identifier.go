package entities

import (
	"fmt"
	"strings"
)

// FormatIdentifier renders a human-readable number such as DEVIS-2026-00042.
func FormatIdentifier(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, seq)
}

// IdentifierScope is the PREFIX-YEAR namespace a sequence counts within.
func IdentifierScope(prefix string, year int) string {
	return fmt.Sprintf("%s-%d", prefix, year)
}

// ScopeOfIdentifier returns the PREFIX-YEAR part of a formatted identifier.
func ScopeOfIdentifier(number string) string {
	i := strings.LastIndex(number, "-")
	if i <= 0 {
		return number
	}
	return number[:i]
}
