package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeName trims and title-cases a display name for storage.
func NormalizeName(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}

// NormalizeEmail lowers and trims an email address. Uniqueness is
// case-insensitive, so every lookup and write goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
