package generator

import (
	"context"

	"docwriter/internal/editor"
	"docwriter/internal/locator"
	"docwriter/internal/models"
	"docwriter/internal/utils"
)

// FileResults groups the insertion directives produced for one file during a
// whole-project run.
type FileResults struct {
	Path    string
	Results []models.DocumentationResult
}

// ForProject documents every undocumented function under root, one file at a
// time. Files that fail to load are logged and skipped; cancellation stops
// the walk cleanly and returns what was accumulated.
func (g *Generator) ForProject(ctx context.Context, root string) ([]FileResults, error) {
	files, err := utils.GetAllSourceFiles(root)
	if err != nil {
		return nil, err
	}

	var all []FileResults
	for _, path := range files {
		if ctx.Err() != nil {
			return all, nil
		}

		doc, err := editor.LoadDocument(path)
		if err != nil {
			g.logger.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}

		results, err := g.ForFile(ctx, doc, locator.DetectLanguage(path))
		if err != nil {
			g.logger.Warn("skipping file after batch failure", "path", path, "error", err)
			continue
		}
		if len(results) == 0 {
			continue
		}
		all = append(all, FileResults{Path: path, Results: results})
	}
	return all, nil
}
