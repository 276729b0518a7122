package core

import "strings"

// CleanString trims surrounding whitespace from user-supplied input.
func CleanString(s string) string {
	return strings.TrimSpace(s)
}
