package dto

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

func passwordComplexity(password string) string {
	if len(password) < 8 {
		return "password must be at least 8 characters"
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if !upper || !lower || !digit {
		return "password must contain at least one uppercase letter, one lowercase letter, and one number"
	}

	return ""
}

func requiredName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "is required"
	}

	if len(trimmed) > 50 {
		return "cannot exceed 50 characters"
	}

	return ""
}
