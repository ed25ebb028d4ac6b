// ABOUTME: Utility functions for parsing integers from strings
// ABOUTME: Provides safe parsing with default values

package parse

import (
	"strconv"
	"strings"
)

// IntOrZero safely parses an integer from a string, returning 0 if parsing fails
func IntOrZero(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// Int parses an integer attribute value, reporting whether it was well formed
func Int(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// IntOr parses an integer, falling back to def when the value is missing or malformed
func IntOr(s string, def int) int {
	if v, ok := Int(s); ok {
		return v
	}
	return def
}
