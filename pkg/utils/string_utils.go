package utils

import "strings"

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DerefString returns "" for nil pointers.
func DerefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
