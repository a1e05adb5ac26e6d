package util

import (
	"regexp"
	"strings"
)

var (
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	lowerPattern   = regexp.MustCompile("[a-z]")
	upperPattern   = regexp.MustCompile("[A-Z]")
	digitPattern   = regexp.MustCompile("[0-9]")
	specialPattern = regexp.MustCompile(`[^A-Za-z0-9]`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidateName(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= 1 && len(name) <= 50
}

func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return lowerPattern.MatchString(password) &&
		upperPattern.MatchString(password) &&
		digitPattern.MatchString(password) &&
		specialPattern.MatchString(password)
}
