package validation

import (
	"regexp"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Full name: letters, spaces, hyphens, apostrophes only.
var fullNameRe = regexp.MustCompile(`^[A-Za-z\s\-']+$`)

// Pickup window entries are HH:MM 24h clock values.
var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword requires:
// - at least 8 characters
// - at least one letter
// - at least one number
// - at least one special character
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

func IsValidFullName(fullName string) bool {
	return fullName != "" && fullNameRe.MatchString(fullName)
}

func IsValidClockTime(s string) bool {
	return clockRe.MatchString(s)
}
