// Package parser provides a grammar-backed locator engine for languages with
// a real parser available. It produces the same spans as the heuristic
// locator and falls back to it for everything else.
package parser

import (
	"strings"

	"docwriter/internal/locator"
)

// span is one located function before the source slice is attached.
type span struct {
	name       string
	startLine  int // 0-indexed
	endLine    int // 0-indexed, inclusive
	parameters []string
	isAsync    bool
}

type extractor interface {
	extract(code []byte) ([]span, error)
}

// Engine locates functions with language grammars where one exists (Go,
// JavaScript, TypeScript, Python) and defers to the heuristic locator
// otherwise.
type Engine struct {
	extractors map[locator.Language]extractor
}

// NewEngine creates an engine with all grammar-backed languages registered.
func NewEngine() *Engine {
	return &Engine{
		extractors: map[locator.Language]extractor{
			locator.LanguageGo:         goExtractor{},
			locator.LanguageJavaScript: jsExtractor{},
			locator.LanguageTypeScript: jsExtractor{typescript: true},
			locator.LanguagePython:     pythonExtractor{},
		},
	}
}

// LocateAtPoint returns the innermost function whose span contains line.
func (e *Engine) LocateAtPoint(text string, line int, lang locator.Language) (locator.ParsedFunction, bool) {
	ext, ok := e.extractors[lang]
	if !ok {
		return locator.LocateAtPoint(text, line, lang)
	}
	spans, err := ext.extract([]byte(text))
	if err != nil {
		// Unparseable sources still deserve a best-effort answer.
		return locator.LocateAtPoint(text, line, lang)
	}

	lines := splitLines(text)
	best := -1
	for i, s := range spans {
		if s.startLine <= line && line <= s.endLine {
			if best < 0 || s.startLine > spans[best].startLine {
				best = i
			}
		}
	}
	if best < 0 {
		return locator.ParsedFunction{}, false
	}
	return toFunction(spans[best], lines), true
}

// LocateAll returns every function in source order.
func (e *Engine) LocateAll(text string, lang locator.Language) []locator.ParsedFunction {
	ext, ok := e.extractors[lang]
	if !ok {
		return locator.LocateAll(text, lang)
	}
	spans, err := ext.extract([]byte(text))
	if err != nil {
		return locator.LocateAll(text, lang)
	}

	lines := splitLines(text)
	functions := make([]locator.ParsedFunction, 0, len(spans))
	for _, s := range spans {
		functions = append(functions, toFunction(s, lines))
	}
	return functions
}

func toFunction(s span, lines []string) locator.ParsedFunction {
	end := s.endLine
	if end >= len(lines) {
		end = len(lines) - 1
	}
	return locator.ParsedFunction{
		Name:       s.name,
		StartLine:  s.startLine,
		EndLine:    end,
		Parameters: s.parameters,
		IsAsync:    s.isAsync,
		Code:       strings.Join(lines[s.startLine:end+1], "\n"),
	}
}

// splitParameterList turns "(a, b = 1)" into its trimmed comma-separated
// tokens. Shared by all grammar extractors.
func splitParameterList(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "(")
	raw = strings.TrimSuffix(raw, ")")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	params := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
