// Package generator sequences the documentation pipeline: locate a function,
// build a style-specific prompt, call the generation backend, clean and
// indent the response, and emit an insertion directive.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"docwriter/internal/config"
	"docwriter/internal/editor"
	"docwriter/internal/locator"
	"docwriter/internal/models"
	"docwriter/internal/style"
)

// pacingInterval spaces out successive backend calls during batch runs to
// stay under external rate limits.
const pacingInterval = 500 * time.Millisecond

// selectionName labels results generated from an explicit selection, where
// no function name is known.
const selectionName = "selection"

// ErrNoFunction is returned when the locator finds no function at the query
// point. Callers surface it as a warning, not a failure.
var ErrNoFunction = errors.New("no function found at this position")

// ErrDeclined is returned when the user declines to replace existing
// documentation. Nothing has been generated or recorded at that point.
var ErrDeclined = errors.New("replacement declined")

// TextGenerator is the external text-generation collaborator.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QuotaTracker guards and records daily usage.
type QuotaTracker interface {
	CheckQuota() error
	RecordUse() error
}

// Engine locates function spans in source text. The default is the heuristic
// locator; a grammar-backed engine can be swapped in without touching call
// sites.
type Engine interface {
	LocateAtPoint(text string, line int, lang locator.Language) (locator.ParsedFunction, bool)
	LocateAll(text string, lang locator.Language) []locator.ParsedFunction
}

// heuristicEngine adapts the locator package's pure functions to Engine.
type heuristicEngine struct{}

func (heuristicEngine) LocateAtPoint(text string, line int, lang locator.Language) (locator.ParsedFunction, bool) {
	return locator.LocateAtPoint(text, line, lang)
}

func (heuristicEngine) LocateAll(text string, lang locator.Language) []locator.ParsedFunction {
	return locator.LocateAll(text, lang)
}

// Options configures a Generator. Nil callbacks disable the corresponding
// interaction: a nil Confirm declines every replacement, a nil Progress is
// silent.
type Options struct {
	Settings config.Settings
	Engine   Engine
	Confirm  func(question string) bool
	Progress func(index, total int, name string)
	Logger   *slog.Logger
}

// Generator orchestrates locate, prompt, generate, clean, and indent.
type Generator struct {
	llm      TextGenerator
	usage    QuotaTracker
	engine   Engine
	settings config.Settings
	confirm  func(string) bool
	progress func(int, int, string)
	logger   *slog.Logger
	limiter  *rate.Limiter
}

// New creates a generator over the given backend and quota tracker.
func New(llm TextGenerator, usage QuotaTracker, opts Options) *Generator {
	engine := opts.Engine
	if engine == nil {
		engine = heuristicEngine{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		llm:      llm,
		usage:    usage,
		engine:   engine,
		settings: opts.Settings,
		confirm:  opts.Confirm,
		progress: opts.Progress,
		logger:   logger,
		limiter:  rate.NewLimiter(rate.Every(pacingInterval), 1),
	}
}

// ForFunction documents the function enclosing the given line. Returns
// ErrNoFunction when nothing matches, and ErrDeclined when the function is
// already documented and the user does not confirm the replacement.
func (g *Generator) ForFunction(ctx context.Context, doc *editor.Document, line int, lang locator.Language) (*models.DocumentationResult, error) {
	fn, ok := g.engine.LocateAtPoint(doc.Text(), line, lang)
	if !ok {
		return nil, ErrNoFunction
	}

	if locator.IsDocumented(doc.Text(), fn.StartLine) {
		question := fmt.Sprintf("%q already has documentation. Replace it?", fn.Name)
		if g.confirm == nil || !g.confirm(question) {
			return nil, ErrDeclined
		}
	}

	return g.generate(ctx, fn.Code, lang, fn.Name, fn.StartLine, doc.LeadingWhitespace(fn.StartLine))
}

// ForFile documents every undocumented function in the document. Per-item
// failures are logged and skipped; cancellation stops the batch cleanly and
// returns whatever was accumulated.
func (g *Generator) ForFile(ctx context.Context, doc *editor.Document, lang locator.Language) ([]models.DocumentationResult, error) {
	var targets []locator.ParsedFunction
	for _, fn := range g.engine.LocateAll(doc.Text(), lang) {
		if !locator.IsDocumented(doc.Text(), fn.StartLine) {
			targets = append(targets, fn)
		}
	}
	if len(targets) == 0 {
		return nil, nil
	}

	var results []models.DocumentationResult
	for i, fn := range targets {
		if ctx.Err() != nil {
			return results, nil
		}
		if g.progress != nil {
			g.progress(i+1, len(targets), fn.Name)
		}
		if err := g.limiter.Wait(ctx); err != nil {
			return results, nil
		}

		result, err := g.generate(ctx, fn.Code, lang, fn.Name, fn.StartLine, doc.LeadingWhitespace(fn.StartLine))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return results, nil
			}
			g.logger.Warn("skipping function after generation failure",
				"function", fn.Name, "line", fn.StartLine, "error", err)
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

// ForSelection documents a verbatim text payload. The locator and the
// already-documented check are skipped entirely.
func (g *Generator) ForSelection(ctx context.Context, doc *editor.Document, selected string, startLine int, lang locator.Language) (*models.DocumentationResult, error) {
	return g.generate(ctx, selected, lang, selectionName, startLine, doc.LeadingWhitespace(startLine))
}

// generate runs the shared tail of every operation: style resolution, quota
// check, prompt, backend call, cleanup, and indentation. Usage is recorded
// only on success.
func (g *Generator) generate(ctx context.Context, code string, lang locator.Language, name string, insertionLine int, indent string) (*models.DocumentationResult, error) {
	resolved := style.Resolve(style.Style(g.settings.Style), lang)
	req := models.DocumentationRequest{
		Code:            code,
		Language:        string(lang),
		Style:           string(resolved),
		IncludeExamples: g.settings.IncludeExamples,
		IncludeTypes:    g.settings.IncludeTypes,
	}

	// The local quota must fail before any external call is attempted.
	if err := g.usage.CheckQuota(); err != nil {
		return nil, err
	}

	raw, err := g.llm.Generate(ctx, style.BuildPrompt(req, g.settings.ResponseLanguage))
	if err != nil {
		return nil, err
	}
	if err := g.usage.RecordUse(); err != nil {
		g.logger.Warn("failed to record usage", "error", err)
	}

	text := Indent(CleanComment(raw, resolved), indent)
	return &models.DocumentationResult{
		InsertionLine: insertionLine,
		Text:          text,
		SourceName:    name,
	}, nil
}
