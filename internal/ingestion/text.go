package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	blankLineRun = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a single line, keeping headings and bullet markers
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Markdown headings are kept as-is, flush left
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullets in any common notation become "- "
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			return "- " + spaceRun.ReplaceAllString(strings.TrimSpace(trimmed[len(marker):]), " ")
		}
	}

	return spaceRun.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a cleaned line is a bullet list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ")
}
