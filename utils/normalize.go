package utils

import (
	"regexp"
	"strings"
)

var (
	hspaceRunRegex = regexp.MustCompile(`[ \t]{2,}`)
	lineLeadRegex  = regexp.MustCompile(`\n[ \t]+`)
	lineTrailRegex = regexp.MustCompile(`[ \t]+\n`)
)

// NormalizeText canonicalizes whitespace and punctuation in raw recognized
// text. Rules run in a fixed order and never reorder lines, so positional
// heuristics downstream stay valid. Normalizing already-normalized text
// returns it unchanged, and empty input yields empty output.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}

	t := strings.ReplaceAll(raw, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")

	// Recognizers render table rules and column edges as vertical bars.
	t = strings.ReplaceAll(t, "|", " ")

	// Semicolons on tickets are always misread colons.
	t = strings.ReplaceAll(t, ";", ":")

	t = strings.ReplaceAll(t, "–", "-")
	t = strings.ReplaceAll(t, "—", "-")

	t = hspaceRunRegex.ReplaceAllString(t, " ")
	t = lineLeadRegex.ReplaceAllString(t, "\n")
	t = lineTrailRegex.ReplaceAllString(t, "\n")

	return strings.TrimSpace(t)
}
