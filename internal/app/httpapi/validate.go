package httpapi

import (
	"regexp"
	"strings"

	"github.com/plateful/backend/internal/app/domain/token"
)

// maxAddressLength bounds the free-text address field.
const maxAddressLength = 500

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// requiredString accepts a field only when its trimmed value is nonempty.
func requiredString(v string) (string, bool) {
	v = strings.TrimSpace(v)
	return v, v != ""
}

// boundedString additionally enforces a maximum length on the trimmed value.
func boundedString(v string, max int) (string, bool) {
	v, ok := requiredString(v)
	return v, ok && len(v) < max
}

// emailField accepts a nonempty trimmed value matching the email syntax.
func emailField(v string) (string, bool) {
	v, ok := requiredString(v)
	return v, ok && emailPattern.MatchString(v)
}

// tokenIDField accepts only values of the exact token id length.
func tokenIDField(v string) (string, bool) {
	v = strings.TrimSpace(v)
	return v, len(v) == token.IDLength
}
