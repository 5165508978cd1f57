// Package locator finds function boundaries in source text using per-language
// signature patterns plus brace or indentation scanning. It is heuristic by
// design: no grammar is involved, and absence of a match is a normal result
// rather than an error.
package locator

import (
	"regexp"
	"strings"
)

// lookbackWindow is how many lines above the query point LocateAtPoint will
// inspect for a function signature.
const lookbackWindow = 20

// anonymousName is used when a pattern matches but captures no name.
const anonymousName = "anonymous"

// reservedNames are identifiers that signature-shaped lines may capture but
// that can never be function names (`if (x) {` and friends). Go's regexp has
// no negative lookahead, so these are filtered after the match.
var reservedNames = map[string]bool{
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
	"catch":  true,
	"return": true,
	"else":   true,
}

// LocateAtPoint finds the function enclosing (or nearest above) the given
// line. It scans at most lookbackWindow lines backward from line, nearest
// first, and reports ok=false when no pattern matches inside that window.
func LocateAtPoint(text string, line int, lang Language) (ParsedFunction, bool) {
	lines := splitLines(text)
	if len(lines) == 0 || line < 0 || line >= len(lines) {
		return ParsedFunction{}, false
	}

	spec := specFor(lang)
	lowBound := line - lookbackWindow
	if lowBound < 0 {
		lowBound = 0
	}

	for i := line; i >= lowBound; i-- {
		if name, ok := matchLine(lines[i], spec.patterns); ok {
			return buildFunction(lines, i, name, spec), true
		}
	}
	return ParsedFunction{}, false
}

// LocateAll finds every line matching a function pattern in source order.
// Scanning resumes on the physical line after each match, so a nested
// function yields its own (overlapping) entry. Known limitation, kept
// deliberately simple.
func LocateAll(text string, lang Language) []ParsedFunction {
	lines := splitLines(text)
	spec := specFor(lang)

	var functions []ParsedFunction
	for i := 0; i < len(lines); i++ {
		name, ok := matchLine(lines[i], spec.patterns)
		if !ok {
			continue
		}
		functions = append(functions, buildFunction(lines, i, name, spec))
	}
	return functions
}

// IsDocumented reports whether the line immediately above startLine looks
// like the tail of a documentation comment. Line 0 has no preceding line and
// is never documented.
func IsDocumented(text string, startLine int) bool {
	if startLine <= 0 {
		return false
	}
	lines := splitLines(text)
	if startLine >= len(lines) {
		return false
	}
	prev := strings.TrimSpace(lines[startLine-1])
	return strings.HasSuffix(prev, "*/") ||
		strings.HasSuffix(prev, `"""`) ||
		strings.HasSuffix(prev, "'''") ||
		strings.HasPrefix(prev, "///")
}

func matchLine(line string, patterns []*regexp.Regexp) (string, bool) {
	for _, p := range patterns {
		m := p.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := anonymousName
		if len(m) > 1 && m[1] != "" {
			name = m[1]
		}
		if reservedNames[name] {
			continue
		}
		return name, true
	}
	return "", false
}

func buildFunction(lines []string, startLine int, name string, spec languageSpec) ParsedFunction {
	var endLine int
	if spec.indentBlocks {
		endLine = findIndentEnd(lines, startLine)
	} else {
		endLine = findBraceEnd(lines, startLine)
	}

	return ParsedFunction{
		Name:       name,
		StartLine:  startLine,
		EndLine:    endLine,
		Parameters: extractParameters(lines[startLine]),
		IsAsync:    strings.Contains(lines[startLine], "async"),
		Code:       strings.Join(lines[startLine:endLine+1], "\n"),
	}
}

// findBraceEnd scans forward counting braces across every character of each
// line. The end is the first line, once an opening brace has been seen, where
// the running count returns to zero. A body that never balances degenerates
// to a single-line result.
func findBraceEnd(lines []string, startLine int) int {
	count := 0
	started := false

	for i := startLine; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				count++
				started = true
			case '}':
				count--
			}
		}
		if started && count == 0 {
			return i
		}
	}
	return startLine
}

// findIndentEnd handles offside-rule bodies: the end is the last non-blank,
// non-comment line indented deeper than the signature line. Trailing blanks
// before a dedent are not part of the body. With no dedent the body runs to
// the end of the document.
func findIndentEnd(lines []string, startLine int) int {
	startIndent := indentWidth(lines[startLine])
	end := startLine

	for i := startLine + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if indentWidth(lines[i]) <= startIndent {
			return end
		}
		end = i
	}
	return len(lines) - 1
}

// extractParameters pulls parameter tokens from the first parenthesized group
// on the signature line. Multi-line signatures and nested parentheses are not
// handled; this is line-local on purpose.
func extractParameters(line string) []string {
	open := strings.Index(line, "(")
	if open < 0 {
		return nil
	}
	closeIdx := strings.Index(line[open+1:], ")")
	if closeIdx < 0 {
		return nil
	}
	inner := line[open+1 : open+1+closeIdx]
	if strings.TrimSpace(inner) == "" {
		return nil
	}

	parts := strings.Split(inner, ",")
	params := make([]string, 0, len(parts))
	for _, part := range parts {
		params = append(params, strings.TrimSpace(part))
	}
	return params
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
