// Package strings provides string-slice utilities for alias handling.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved, so the first
// occurrence of a name variant wins.
//
// Example:
//
//	DedupeAndTrim([]string{"  Jon Smith ", "J. Smith", "Jon Smith", "", "  "})
//	// Returns: []string{"Jon Smith", "J. Smith"}
func DedupeAndTrim(values []string) []string {
	return DedupeBy(values, func(s string) string { return s })
}

// DedupeBy removes duplicates and empty strings from a slice, trimming
// whitespace and comparing elements by the given key function. The original
// (trimmed) spelling of the first occurrence is kept, which matters for alias
// sets where the verbatim published form must survive deduplication.
//
// Example:
//
//	DedupeBy([]string{"JON SMITH", "jon smith"}, strings.ToLower)
//	// Returns: []string{"JON SMITH"}
func DedupeBy(values []string, key func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		k := key(trimmed)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
