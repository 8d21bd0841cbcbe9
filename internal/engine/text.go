package engine

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// foldText lowercases and NFKC-normalizes text so keyword scans are stable
// across the unicode variants that PDF extraction tends to produce
// (ligatures, full-width forms, compatibility characters).
func foldText(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// containsAny reports whether the folded haystack contains any of the
// needles. Needles are assumed lowercase.
func containsAny(haystack string, needles []string) bool {
	if haystack == "" {
		return false
	}
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// matchAny returns the needles present in the folded haystack.
func matchAny(haystack string, needles []string) []string {
	if haystack == "" {
		return nil
	}
	var matched []string
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			matched = append(matched, n)
		}
	}
	return matched
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
