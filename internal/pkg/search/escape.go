// Package search holds the literal substring matching rules shared by the
// story store adapters.
package search

import (
	"regexp"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeILIKE escapes LIKE wildcards in keyword and wraps it in % so the
// pattern matches keyword literally anywhere in a column.
// The escape character is a backslash.
func EscapeILIKE(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// RegexLiteral returns a regular expression matching keyword literally.
func RegexLiteral(keyword string) string {
	return regexp.QuoteMeta(keyword)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
