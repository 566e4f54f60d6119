package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAccountNumber returns a zero-padded account number like "000042".
func FormatAccountNumber(number int) string {
	return fmt.Sprintf("%06d", number)
}

// FormatAccountRef returns a branch-qualified reference like "0001/000042".
func FormatAccountRef(branch string, number int) string {
	return branch + "/" + FormatAccountNumber(number)
}

// ParseAccountNumber parses "42", "000042" or "0001/000042" into 42.
func ParseAccountNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return 0, fmt.Errorf("invalid account number: empty")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid account number %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid account number %q: must be positive", s)
	}
	return n, nil
}

// NormalizeTaxID strips the punctuation people type into tax IDs.
// "123.456.789-00" -> "12345678900"
func NormalizeTaxID(s string) (string, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '/' || r == ' ':
			// Separator.
		default:
			return "", fmt.Errorf("invalid tax ID %q: unexpected character %q", s, r)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("invalid tax ID %q: no digits", s)
	}
	return b.String(), nil
}
