// Package editor is the host-side surface of the generator: documents as
// ordered line sequences, edit application, and terminal prompts.
package editor

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"docwriter/internal/models"
)

// Document is a source file held as an ordered sequence of lines.
type Document struct {
	Path  string
	lines []string
}

// LoadDocument reads a document from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewDocument(path, string(data)), nil
}

// NewDocument builds a document from raw text. Path may be empty for
// documents that only live in memory (stdin selections).
func NewDocument(path, text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Document{
		Path:  path,
		lines: strings.Split(text, "\n"),
	}
}

// Text returns the full document text.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns line i, or the empty string out of range.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// LeadingWhitespace returns the literal leading whitespace of line i.
func (d *Document) LeadingWhitespace(i int) string {
	line := d.Line(i)
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// InsertAbove inserts text as new lines immediately above the given line,
// pushing that line and everything below it down.
func (d *Document) InsertAbove(line int, text string) {
	if line < 0 {
		line = 0
	}
	if line > len(d.lines) {
		line = len(d.lines)
	}
	inserted := strings.Split(text, "\n")
	d.lines = append(d.lines[:line], append(append([]string{}, inserted...), d.lines[line:]...)...)
}

// ApplyResults inserts a batch of insertion directives. Directives are
// applied bottom-up so earlier insertion lines stay valid as the document
// grows.
func (d *Document) ApplyResults(results []models.DocumentationResult) {
	ordered := append([]models.DocumentationResult{}, results...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].InsertionLine > ordered[j].InsertionLine
	})
	for _, r := range ordered {
		d.InsertAbove(r.InsertionLine, r.Text)
	}
}

// Save writes the document back to its path.
func (d *Document) Save() error {
	if d.Path == "" {
		return fmt.Errorf("document has no backing file")
	}
	return os.WriteFile(d.Path, []byte(d.Text()), 0o644)
}
