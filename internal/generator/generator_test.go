package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"docwriter/internal/config"
	"docwriter/internal/editor"
	"docwriter/internal/llm"
	"docwriter/internal/locator"
)

type stubLLM struct {
	respond func(prompt string) (string, error)
	calls   int
	prompts []string
}

func (s *stubLLM) Generate(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.respond != nil {
		return s.respond(prompt)
	}
	return "/**\n * Generated.\n */", nil
}

type stubTracker struct {
	checkErr error
	used     int
}

func (s *stubTracker) CheckQuota() error { return s.checkErr }
func (s *stubTracker) RecordUse() error  { s.used++; return nil }

func TestForFunctionEndToEnd(t *testing.T) {
	t.Parallel()

	doc := editor.NewDocument("add.js", "function add(a, b) {\n  return a + b;\n}")
	backend := &stubLLM{respond: func(string) (string, error) {
		return "```\n/**\n * Adds two numbers.\n */\n```", nil
	}}
	tracker := &stubTracker{}
	g := New(backend, tracker, Options{})

	result, err := g.ForFunction(context.Background(), doc, 0, locator.LanguageJavaScript)
	if err != nil {
		t.Fatalf("ForFunction: %v", err)
	}
	if result.InsertionLine != 0 {
		t.Fatalf("InsertionLine=%d, want 0", result.InsertionLine)
	}
	if result.SourceName != "add" {
		t.Fatalf("SourceName=%q, want add", result.SourceName)
	}
	if result.Text != "/**\n * Adds two numbers.\n */" {
		t.Fatalf("Text=%q, fences should be stripped without duplicating delimiters", result.Text)
	}
	if tracker.used != 1 {
		t.Fatalf("RecordUse called %d times, want 1", tracker.used)
	}
	if !strings.Contains(backend.prompts[0], "```javascript") {
		t.Fatal("prompt should fence the code with its language tag")
	}
}

func TestForFunctionNotFound(t *testing.T) {
	t.Parallel()

	doc := editor.NewDocument("notes.js", "const x = 1;\nconst y = 2;")
	backend := &stubLLM{}
	g := New(backend, &stubTracker{}, Options{})

	_, err := g.ForFunction(context.Background(), doc, 1, locator.LanguageJavaScript)
	if !errors.Is(err, ErrNoFunction) {
		t.Fatalf("err=%v, want ErrNoFunction", err)
	}
	if backend.calls != 0 {
		t.Fatal("backend must not be called when no function is found")
	}
}

func TestForFunctionDeclineLeavesNoSideEffects(t *testing.T) {
	t.Parallel()

	doc := editor.NewDocument("add.js", "/** old docs */\nfunction add(a, b) {\n  return a + b;\n}")
	backend := &stubLLM{}
	tracker := &stubTracker{}
	g := New(backend, tracker, Options{
		Confirm: func(string) bool { return false },
	})

	_, err := g.ForFunction(context.Background(), doc, 1, locator.LanguageJavaScript)
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("err=%v, want ErrDeclined", err)
	}
	if backend.calls != 0 || tracker.used != 0 {
		t.Fatal("a declined replacement must not call the backend or record usage")
	}
}

func TestForFunctionConfirmedReplacement(t *testing.T) {
	t.Parallel()

	doc := editor.NewDocument("add.js", "/** old docs */\nfunction add(a, b) {\n  return a + b;\n}")
	g := New(&stubLLM{}, &stubTracker{}, Options{
		Confirm: func(string) bool { return true },
	})

	result, err := g.ForFunction(context.Background(), doc, 1, locator.LanguageJavaScript)
	if err != nil {
		t.Fatalf("ForFunction: %v", err)
	}
	if result.InsertionLine != 1 {
		t.Fatalf("InsertionLine=%d, want 1", result.InsertionLine)
	}
}

func TestQuotaFailsBeforeExternalCall(t *testing.T) {
	t.Parallel()

	doc := editor.NewDocument("add.js", "function add(a, b) {\n  return a + b;\n}")
	backend := &stubLLM{}
	tracker := &stubTracker{checkErr: &llm.QuotaError{}}
	g := New(backend, tracker, Options{})

	_, err := g.ForFunction(context.Background(), doc, 0, locator.LanguageJavaScript)
	if !llm.IsQuotaError(err) {
		t.Fatalf("err=%v, want a QuotaError", err)
	}
	if backend.calls != 0 {
		t.Fatal("an exhausted quota must fail before any external call")
	}
}

func TestForFileSkipsDocumentedAndIsolatesFailures(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"/** documented */",
		"function one() {",
		"  return 1;",
		"}",
		"function two() {",
		"  return 2;",
		"}",
		"function three() {",
		"  return 3;",
		"}",
	}, "\n")
	doc := editor.NewDocument("multi.js", text)

	backend := &stubLLM{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "return 2;") {
			return "", fmt.Errorf("backend hiccup")
		}
		return "/**\n * Docs.\n */", nil
	}}

	var seen []string
	g := New(backend, &stubTracker{}, Options{
		Progress: func(index, total int, name string) {
			seen = append(seen, fmt.Sprintf("%d/%d %s", index, total, name))
		},
	})

	results, err := g.ForFile(context.Background(), doc, locator.LanguageJavaScript)
	if err != nil {
		t.Fatalf("ForFile: %v", err)
	}
	// "one" is already documented; "two" fails; only "three" succeeds.
	if len(results) != 1 {
		t.Fatalf("len(results)=%d, want 1", len(results))
	}
	if results[0].SourceName != "three" {
		t.Fatalf("SourceName=%q, want three", results[0].SourceName)
	}
	if len(seen) != 2 || seen[0] != "1/2 two" || seen[1] != "2/2 three" {
		t.Fatalf("progress=%v, want [1/2 two, 2/2 three]", seen)
	}
}

func TestForFileNothingToDo(t *testing.T) {
	t.Parallel()

	doc := editor.NewDocument("done.js", "/** docs */\nfunction one() {\n  return 1;\n}")
	backend := &stubLLM{}
	g := New(backend, &stubTracker{}, Options{})

	results, err := g.ForFile(context.Background(), doc, locator.LanguageJavaScript)
	if err != nil {
		t.Fatalf("ForFile: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("len(results)=%d, want 0", len(results))
	}
	if backend.calls != 0 {
		t.Fatal("nothing-to-do must not call the backend")
	}
}

func TestForFileCancellationStopsCleanly(t *testing.T) {
	t.Parallel()

	doc := editor.NewDocument("multi.js", "function one() {\n  return 1;\n}\nfunction two() {\n  return 2;\n}")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := &stubLLM{}
	g := New(backend, &stubTracker{}, Options{})

	results, err := g.ForFile(ctx, doc, locator.LanguageJavaScript)
	if err != nil {
		t.Fatalf("cancellation must not be reported as a failure: %v", err)
	}
	if len(results) != 0 || backend.calls != 0 {
		t.Fatal("a pre-cancelled batch must do no work")
	}
}

func TestForSelectionUsesVerbatimPayloadAndIndent(t *testing.T) {
	t.Parallel()

	doc := editor.NewDocument("cls.ts", "class A {\n    method() {\n        return 1;\n    }\n}")
	backend := &stubLLM{respond: func(prompt string) (string, error) {
		if !strings.Contains(prompt, "method() {") {
			return "", fmt.Errorf("selection payload missing from prompt")
		}
		return "/**\n * Docs.\n */", nil
	}}
	g := New(backend, &stubTracker{}, Options{})

	selected := "    method() {\n        return 1;\n    }"
	result, err := g.ForSelection(context.Background(), doc, selected, 1, locator.LanguageTypeScript)
	if err != nil {
		t.Fatalf("ForSelection: %v", err)
	}
	if result.InsertionLine != 1 {
		t.Fatalf("InsertionLine=%d, want 1", result.InsertionLine)
	}
	if !strings.HasPrefix(result.Text, "    /**") {
		t.Fatalf("Text=%q, want the selection line's indentation applied", result.Text)
	}
}

func TestStyleOverrideWinsOverLanguageDefault(t *testing.T) {
	t.Parallel()

	doc := editor.NewDocument("f.py", "def f():\n    return 1")
	backend := &stubLLM{}
	g := New(backend, &stubTracker{}, Options{
		Settings: config.Settings{Style: "numpy"},
	})

	if _, err := g.ForFunction(context.Background(), doc, 0, locator.LanguagePython); err != nil {
		t.Fatalf("ForFunction: %v", err)
	}
	if !strings.Contains(backend.prompts[0], "numpy documentation comment") {
		t.Fatalf("prompt should use the numpy override, got %q", backend.prompts[0])
	}
}
