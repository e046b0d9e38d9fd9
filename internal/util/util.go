// Package util provides common helpers used across the npced packages.
package util

import (
	"strconv"
	"strings"
)

// SplitTokens splits a command line into tokens. Both whitespace and commas
// act as separators, so "spawn, Guard, 10, 0, 5, 90" and
// "spawn 1 Guard 10 0 5 90" tokenize the same way.
func SplitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// FormatFloat renders a coordinate or angle with the shortest exact
// representation ("10", "0.5", "-3.25").
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// SplitPath splits a slash-delimited grouping path into its segments,
// dropping empty parts so "A//B/" and "A/B" are equivalent.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinPath is the inverse of SplitPath.
func JoinPath(parts []string) string {
	return strings.Join(parts, "/")
}
