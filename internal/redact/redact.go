// Package redact strips credentials, tokens, SQL and file paths from error
// text before it is logged.
package redact

import (
	"log/slog"
	"regexp"
)

// Placeholders substituted for redacted content.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order; later rules see the output of earlier ones.
var rules = []rule{
	{
		// userinfo in database and cache URLs
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|redis|rediss)://[^\s@/]*@`),
		replacement: "${1}://" + RedactedCredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|jwt_secret)=[^\s&]+`),
		replacement: "${1}=" + RedactionPlaceholder,
	},
	{
		// everything from the statement keyword to the end of the line
		pattern: regexp.MustCompile(
			`(?i)\b(?:SELECT\s.+?\sFROM|INSERT\s+INTO|UPDATE\s+\w+\s+SET|DELETE\s+FROM)\b.*`,
		),
		replacement: RedactedSQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		replacement: RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Attr returns the redacted error as an "error" log attribute.
func Attr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
