// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"regexp"
	"strings"
)

// fencedJSONPattern matches the first ```json fenced block. The opening tag
// and closing fence must sit on their own lines.
var fencedJSONPattern = regexp.MustCompile("(?s)```json\\n(.*?)\\n```")

// ExtractFencedJSON returns the contents of the first ```json fenced block in text.
// ok is false when no such block exists.
func ExtractFencedJSON(text string) (block string, ok bool) {
	m := fencedJSONPattern.FindStringSubmatch(normalizeNewlines(text))
	if m == nil {
		return "", false
	}
	return m[1], true
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
