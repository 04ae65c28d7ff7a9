package validators

import (
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	digitsRe   = regexp.MustCompile(`[0-9]`)
)

func IsEmailShaped(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

func IsValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

func IsValidPassword(password string) bool {
	return len(password) >= 6
}

func IsValidFullName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// Contact numbers must carry at least 10 digits; separators are ignored.
func IsValidContactNumber(phone string) bool {
	return len(digitsRe.FindAllString(phone, -1)) >= 10
}

func IsValidAge(age int) bool {
	return age >= 13 && age <= 120
}
