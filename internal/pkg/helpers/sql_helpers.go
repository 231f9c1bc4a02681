package helpers

import "strings"

// NullIfBlank returns nil for a nil or whitespace-only string so optional
// text columns store NULL instead of an empty string.
func NullIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
