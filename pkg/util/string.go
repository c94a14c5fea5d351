package util

import "strings"

// Preview returns the first n runes of s with an ellipsis appended when
// content was cut off. Used for the short draft previews returned by the
// generation endpoints.
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// SplitKeywords parses a comma-joined keyword string into clean parts
func SplitKeywords(keywords string) []string {
	if keywords == "" {
		return []string{}
	}

	parts := strings.Split(keywords, ",")
	var cleaned []string

	for _, part := range parts {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, "\"'")
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}

	return cleaned
}

// JoinKeywords normalizes a keyword list back into the comma-joined form
// stored on drafts.
func JoinKeywords(keywords []string) string {
	return strings.Join(keywords, ", ")
}
