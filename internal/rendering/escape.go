package rendering

import (
	"strings"
	"unicode"
)

// cleanLine collapses a single-line field: control characters and runs of whitespace
// become one space, and the result is trimmed.
func cleanLine(text string) string {
	return strings.Join(strings.FieldsFunc(text, isBreak), " ")
}

// cleanBlock trims a multi-line field, keeping paragraph breaks but dropping other
// control characters.
func cleanBlock(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = cleanLine(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func isBreak(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}
