package utils

import (
	"regexp"
	"strings"
)

const MaxUsernameLength = 32

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername reports why username is not well-formed, or "" when it is.
// Rules: 1-32 characters, letters, numbers, underscores only.
func ValidateUsername(username string) string {
	switch {
	case username == "":
		return "username is required"
	case len(username) > MaxUsernameLength:
		return "username must be at most 32 characters"
	case !usernameRegex.MatchString(username):
		return "username can only contain letters, numbers, and underscores"
	}
	return ""
}

// NormalizeUsername trims surrounding whitespace before lookup and storage.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
