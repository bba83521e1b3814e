// Package sanitizer normalizes free-text request fields before validation
// and persistence. Values arriving here end up in Mongo filters and email
// templates, so whitespace is collapsed and control characters dropped.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal whitespace runs
// to a single space, dropping control characters.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}

// NormalizeName normalizes person and guest-house names.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail lowercases and trims an email address, matching how the
// users collection stores it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeRoomNumber uppercases a room number so "12a" and "12A" collide
// on the unique index.
func NormalizeRoomNumber(roomNumber string) string {
	return strings.ToUpper(TrimAndNormalize(roomNumber))
}

// NormalizeSlice normalizes each element, dropping empties and duplicates
// while preserving order. Used for amenity lists.
func NormalizeSlice(values []string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := TrimAndNormalize(v)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	return out
}
