package entity

import (
	"regexp"
	"strings"
)

var scriptTagPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)

// SanitizeText removes <script>...</script> blocks and trims surrounding whitespace.
// Removal repeats until nothing matches, so nested fragments such as
// "<scr<script></script>ipt>" cannot reassemble into a tag and
// SanitizeText(SanitizeText(s)) == SanitizeText(s).
func SanitizeText(s string) string {
	for {
		next := scriptTagPattern.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}
