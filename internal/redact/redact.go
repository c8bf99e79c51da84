// Package redact scrubs credentials and personal data from strings before
// they are logged. Database drivers and auth code tend to echo connection
// strings, tokens, password hashes and email addresses in their error text.
package redact

import "regexp"

const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	HashPlaceholder       = "[REDACTED_HASH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	AuthHeaderPlaceholder = "[REDACTED_AUTH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; earlier rules must not be broken by later ones, so the
// connection string rule runs before the email rule that would match user@host.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres|postgresql)://[^@\s]+@`), CredentialPlaceholder + "@"},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)(\s*[=:]\s*['"]?)[^'"&\s]+`), "${1}${2}" + CredentialPlaceholder},
	{regexp.MustCompile(`(?i)(Bearer|Basic)\s+[A-Za-z0-9_\-.~+/=]{8,}`), AuthHeaderPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), JWTPlaceholder},
	{regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`), HashPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
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
