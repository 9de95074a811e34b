// Package validators holds the registration and profile field checks.
// All functions are pure predicates over strings; they never panic and
// treat any malformed input as simply invalid.
package validators

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRe  = regexp.MustCompile(`^[A-Za-z]+$`)
	// Irish mobile: optional +353 or leading 0, then 8[3-9], then 7 digits.
	phoneRe = regexp.MustCompile(`^(\+353|0)8[3-9]\d{7}$`)
	// Eircode: routing key (letter + two digits), optional space, then a
	// 4-character alphanumeric unique identifier.
	eircodeRe = regexp.MustCompile(`^[A-Za-z]\d{2} ?[A-Za-z0-9]{4}$`)
)

func Email(s string) bool {
	return emailRe.MatchString(s)
}

func Password(s string) bool {
	return len(s) >= 8
}

func FirstName(s string) bool {
	return len(s) > 0 && len(s) <= 30 && nameRe.MatchString(s)
}

func LastName(s string) bool {
	return len(s) > 0 && len(s) <= 40 && nameRe.MatchString(s)
}

func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

func Eircode(s string) bool {
	return eircodeRe.MatchString(strings.TrimSpace(s))
}

func ConfirmPassword(confirm, password string) bool {
	return confirm == password
}
