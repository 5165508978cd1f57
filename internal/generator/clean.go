package generator

import (
	"strings"

	"docwriter/internal/style"
)

// CleanComment normalizes raw model output into a well-formed comment block:
// fence markers are stripped, surrounding whitespace trimmed, and for the
// /** ... */ family the delimiters are guaranteed without being duplicated.
// Running it twice on clean input yields the same text.
func CleanComment(raw string, st style.Style) string {
	text := strings.TrimSpace(raw)

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	if style.IsBraceComment(st) {
		if !strings.HasPrefix(text, "/**") {
			text = "/**\n" + text
		}
		if !strings.HasSuffix(text, "*/") {
			text = text + "\n*/"
		}
	}
	return text
}

// Indent prefixes every line of text with the literal leading whitespace of
// the insertion point.
func Indent(text, prefix string) string {
	if prefix == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
