// Package redact provides utilities for redacting sensitive information from
// strings before they are logged or returned in error responses. In a payment
// gateway the main hazards are card numbers, provider credentials and
// connection strings leaking through wrapped errors.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPANPlaceholder        = "[REDACTED_PAN]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Card numbers: 13-19 digit runs, optionally grouped by spaces or dashes.
	// Masked card representations (411111******1111) are already safe and
	// deliberately not matched.
	panRegex = regexp.MustCompile(`\b\d{13,19}\b|\b(?:\d{4}[ -]){3}\d{4}(?:[ -]?\d{1,3})?\b`)

	// Database connection strings
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|mysql|redis|db|database|connection)://[^@\s]+@`)

	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|merchant[_-]?key|token|secret|signature|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// JWT token pattern - matches the standard three-part base64url-encoded format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// Ordered: the PAN pattern must run before the generic key patterns so
	// digit runs inside tokens are reported as card data, not keys.
	patterns = []*regexp.Regexp{
		panRegex, dbConnRegex, passwordRegex, apiKeyRegex, jwtTokenRegex, emailRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		panRegex:      RedactedPANPlaceholder,
		dbConnRegex:   RedactedCredentialPlaceholder,
		passwordRegex: RedactedCredentialPlaceholder,
		apiKeyRegex:   RedactedKeyPlaceholder,
		jwtTokenRegex: "[REDACTED_JWT]",
		emailRegex:    "[REDACTED_EMAIL]",
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
