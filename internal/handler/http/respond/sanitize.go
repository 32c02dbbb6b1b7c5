package respond

import (
	"regexp"
)

var (
	// user:password in URL-style DSNs (postgres://, mongodb://, mongodb+srv://)
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// password=... in key/value DSNs
	kvPasswordPattern = regexp.MustCompile(`(?i)\bpassword=([^\s&]+)`)
)

// SanitizeError returns err's message with store credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "password=****")
	return msg
}
