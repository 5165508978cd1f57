package locator

import (
	"strings"
	"testing"
)

func TestLocateAtPointJavaScript(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"function add(a, b) {",
		"  return a + b;",
		"}",
	}, "\n")

	fn, ok := LocateAtPoint(text, 0, LanguageJavaScript)
	if !ok {
		t.Fatal("expected a function at line 0")
	}
	if fn.Name != "add" {
		t.Fatalf("Name=%q, want %q", fn.Name, "add")
	}
	if fn.StartLine != 0 || fn.EndLine != 2 {
		t.Fatalf("span=%d-%d, want 0-2", fn.StartLine, fn.EndLine)
	}
	if len(fn.Parameters) != 2 || fn.Parameters[0] != "a" || fn.Parameters[1] != "b" {
		t.Fatalf("Parameters=%v, want [a b]", fn.Parameters)
	}
	if fn.IsAsync {
		t.Fatal("IsAsync=true for a plain function")
	}
	if fn.Code != text {
		t.Fatalf("Code=%q, want the full snippet", fn.Code)
	}
}

func TestLocateAtPointFromInsideBody(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"const mul = (x, y) => {",
		"  const p = x * y;",
		"  return p;",
		"};",
	}, "\n")

	fn, ok := LocateAtPoint(text, 2, LanguageJavaScript)
	if !ok {
		t.Fatal("expected a function enclosing line 2")
	}
	if fn.Name != "mul" {
		t.Fatalf("Name=%q, want %q", fn.Name, "mul")
	}
	if fn.StartLine != 0 {
		t.Fatalf("StartLine=%d, want 0", fn.StartLine)
	}
}

func TestLocateAtPointWindowLimit(t *testing.T) {
	t.Parallel()

	// Signature at line 0, query 21 lines below: outside the 20-line window.
	lines := []string{"function far() {"}
	for i := 0; i < 30; i++ {
		lines = append(lines, "  // body")
	}
	text := strings.Join(lines, "\n")

	if _, ok := LocateAtPoint(text, 21, LanguageJavaScript); ok {
		t.Fatal("match 21 lines above the query point should be out of window")
	}
	if _, ok := LocateAtPoint(text, 20, LanguageJavaScript); !ok {
		t.Fatal("match exactly 20 lines above the query point should be found")
	}
}

func TestLocateAtPointNotFound(t *testing.T) {
	t.Parallel()

	text := "const x = 1;\nconst y = 2;\n"
	if _, ok := LocateAtPoint(text, 1, LanguageJavaScript); ok {
		t.Fatal("expected not-found for non-function text")
	}
}

func TestLocateAtPointAsync(t *testing.T) {
	t.Parallel()

	text := "async function fetchData(url) {\n  return fetch(url);\n}"
	fn, ok := LocateAtPoint(text, 0, LanguageJavaScript)
	if !ok {
		t.Fatal("expected a function")
	}
	if !fn.IsAsync {
		t.Fatal("IsAsync=false for an async function")
	}
}

func TestLocateAtPointAnonymous(t *testing.T) {
	t.Parallel()

	text := "export default function (req) {\n  return req;\n}"
	fn, ok := LocateAtPoint(text, 0, LanguageJavaScript)
	if !ok {
		t.Fatal("expected a function")
	}
	if fn.Name != "anonymous" {
		t.Fatalf("Name=%q, want %q", fn.Name, "anonymous")
	}
}

func TestFindBraceEndBalancesNesting(t *testing.T) {
	t.Parallel()

	lines := []string{
		"func outer() {",
		"	if ready {",
		"		run()",
		"	}",
		"}",
		"",
		"func next() {}",
	}

	if got := findBraceEnd(lines, 0); got != 4 {
		t.Fatalf("findBraceEnd=%d, want 4", got)
	}
	if got := findBraceEnd(lines, 6); got != 6 {
		t.Fatalf("findBraceEnd one-liner=%d, want 6", got)
	}
}

func TestFindBraceEndUnterminated(t *testing.T) {
	t.Parallel()

	lines := []string{
		"function broken() {",
		"  return 1;",
	}
	if got := findBraceEnd(lines, 0); got != 0 {
		t.Fatalf("findBraceEnd unterminated=%d, want the start line", got)
	}
}

func TestFindIndentEndStopsBeforeDedent(t *testing.T) {
	t.Parallel()

	lines := []string{
		"def f():",
		"    return 1",
		"",
		"def g():",
	}
	// The blank line before the dedent is not part of the body.
	if got := findIndentEnd(lines, 0); got != 1 {
		t.Fatalf("findIndentEnd=%d, want 1", got)
	}
}

func TestFindIndentEndSkipsCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	lines := []string{
		"def f():",
		"    a = 1",
		"",
		"    # still inside",
		"    return a",
		"x = 2",
	}
	if got := findIndentEnd(lines, 0); got != 4 {
		t.Fatalf("findIndentEnd=%d, want 4", got)
	}
}

func TestFindIndentEndRunsToDocumentEnd(t *testing.T) {
	t.Parallel()

	lines := []string{
		"def f():",
		"    a = 1",
		"    return a",
	}
	if got := findIndentEnd(lines, 0); got != 2 {
		t.Fatalf("findIndentEnd=%d, want 2", got)
	}
}

func TestLocateAllSourceOrder(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"def first():",
		"    return 1",
		"",
		"def second():",
		"    return 2",
	}, "\n")

	fns := LocateAll(text, LanguagePython)
	if len(fns) != 2 {
		t.Fatalf("len=%d, want 2", len(fns))
	}
	if fns[0].Name != "first" || fns[1].Name != "second" {
		t.Fatalf("names=%q,%q, want first,second", fns[0].Name, fns[1].Name)
	}
	if fns[0].EndLine != 1 {
		t.Fatalf("first EndLine=%d, want 1", fns[0].EndLine)
	}
}

func TestLocateAllKeepsNestedDuplicates(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"def outer():",
		"    def inner():",
		"        return 1",
		"    return inner",
	}, "\n")

	fns := LocateAll(text, LanguagePython)
	if len(fns) != 2 {
		t.Fatalf("len=%d, want 2 (nested spans are not deduplicated)", len(fns))
	}
}

func TestControlFlowLinesAreNotFunctions(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"if (ready) {",
		"  go();",
		"}",
	}, "\n")

	if _, ok := LocateAtPoint(text, 0, LanguageJavaScript); ok {
		t.Fatal("an if statement should not match as a function")
	}
}

func TestExtractParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want []string
	}{
		{"function add(a, b) {", []string{"a", "b"}},
		{"def greet(name: str, loud: bool = False):", []string{"name: str", "loud: bool = False"}},
		{"func run() {", nil},
		{"no parens here", nil},
	}

	for _, tt := range tests {
		got := extractParameters(tt.line)
		if len(got) != len(tt.want) {
			t.Fatalf("extractParameters(%q)=%v, want %v", tt.line, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("extractParameters(%q)=%v, want %v", tt.line, got, tt.want)
			}
		}
	}
}

func TestIsDocumented(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		line int
		want bool
	}{
		{"line zero never documented", "/** docs */\nfunc a() {}", 0, false},
		{"block comment tail", " */\nfunc a() {}", 1, true},
		{"docstring tail", `    """` + "\ndef a():", 1, true},
		{"single-quoted docstring tail", "'''\ndef a():", 1, true},
		{"triple slash", "/// docs\nfn a() {}", 1, true},
		{"plain code above", "x = 1\ndef a():", 1, false},
	}

	for _, tt := range tests {
		if got := IsDocumented(tt.text, tt.line); got != tt.want {
			t.Fatalf("%s: IsDocumented=%v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	t.Parallel()

	text := "fn mystery(x) {\n  x\n}"
	fn, ok := LocateAtPoint(text, 0, Language("zig"))
	if !ok {
		t.Fatal("expected the generic pattern set to match")
	}
	if fn.Name != "mystery" {
		t.Fatalf("Name=%q, want %q", fn.Name, "mystery")
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filePath string
		expected Language
	}{
		{"main.go", LanguageGo},
		{"script.py", LanguagePython},
		{"app.js", LanguageJavaScript},
		{"component.tsx", LanguageTypeScript},
		{"lib.rs", LanguageRust},
		{"Service.java", LanguageJava},
		{"index.php", LanguagePHP},
		{"unknown.txt", ""},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.filePath); got != tt.expected {
			t.Errorf("DetectLanguage(%s) = %s, expected %s", tt.filePath, got, tt.expected)
		}
	}
}
