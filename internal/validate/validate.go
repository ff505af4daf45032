package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Indonesian postal code: 5 digits
	rePostal = regexp.MustCompile(`^[0-9]{5}$`)
	reEmail  = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)
	rePhone  = regexp.MustCompile(`^(\+62|62|0)8[1-9][0-9]{6,10}$`)
	reQ      = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// PostalCode validates an Indonesian postal code.
func PostalCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 5 {
		return "", false
	}
	return s, rePostal.MatchString(s)
}

// Email accepts local@domain.tld shapes: a nonempty local part and at least
// two nonempty domain labels, no whitespace anywhere. s is matched as given.
func Email(s string) (string, bool) {
	return s, reEmail.MatchString(s)
}

// Password requires at least 8 characters, letters and digits only, with at
// least one of each.
func Password(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			hasLetter = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

// Phone validates an Indonesian mobile number: 0, 62 or +62, then 8, a digit
// 1-9 and 6 to 10 more digits. s is matched as given.
func Phone(s string) (string, bool) {
	return s, rePhone.MatchString(s)
}

func NotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// WithinLength reports whether the trimmed rune count of s is in [min, max].
func WithinLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= min && n <= max
}

// Accepted is the rule for a terms checkbox.
func Accepted(checked bool) bool { return checked }

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ID validates a simple resource identifier (product/category/address ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}
