// internal/services/match.go
package services

import (
	"strings"
	"unicode"
)

// Contact match scoring for claim review. The scores are advisory metadata
// for the admin queue; a false match never blocks submission or decision.

// MatchEmail compares two email addresses case-insensitively. Returns nil
// when either side is blank, since no comparison is possible.
func MatchEmail(a, b string) *bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return nil
	}

	match := strings.EqualFold(a, b)
	return &match
}

// MatchPhone compares two phone numbers after stripping every non-digit
// character. Returns nil when either side is empty after stripping.
func MatchPhone(a, b string) *bool {
	da := digitsOnly(a)
	db := digitsOnly(b)
	if da == "" || db == "" {
		return nil
	}

	match := da == db
	return &match
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
