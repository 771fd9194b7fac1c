package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace = regexp.MustCompile(`[ \t]+`)
	blankRuns  = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes text content while preserving line structure:
// CRLF to LF, collapsed inner whitespace, at most two consecutive
// newlines, bullets kept as-is.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			line = innerSpace.ReplaceAllString(line, " ")
		}
		cleaned = append(cleaned, line)
	}

	result := strings.Join(cleaned, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
