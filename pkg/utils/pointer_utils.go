package utils

import "time"

// SafeDeref safely dereferences a string pointer and returns empty string if nil
func SafeDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringOr dereferences s, falling back to def when s is nil or empty
func StringOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// TimeOr dereferences t, falling back to the zero time
func TimeOr(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
