// Package utils holds the project-tree walker used by whole-project runs.
package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"docwriter/internal/locator"
)

var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".next":        true,
	"__pycache__":  true,
	".venv":        true,
	"target":       true,
}

// GetAllSourceFiles walks rootPath and returns every file with a supported
// source extension, skipping well-known heavy directories and paths matched
// by the root-level .gitignore.
func GetAllSourceFiles(rootPath string) ([]string, error) {
	var files []string
	ignorePatterns := loadGitIgnorePatterns(rootPath)
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			if isIgnoredPath(relPath, ignorePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if isIgnoredPath(relPath, ignorePatterns) {
			return nil
		}

		if locator.IsSupportedFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// loadGitIgnorePatterns reads the root-level .gitignore (if present) and
// returns a list of non-empty, non-comment patterns.
func loadGitIgnorePatterns(rootPath string) []string {
	data, err := os.ReadFile(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// isIgnoredPath applies a minimal subset of .gitignore semantics, enough to
// skip heavy directories and common file patterns. Patterns are treated as
// root-relative against relPath.
func isIgnoredPath(relPath string, patterns []string) bool {
	relPath = strings.TrimPrefix(relPath, "./")
	relPath = strings.TrimSpace(relPath)
	if relPath == "" {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		p := strings.TrimSpace(pattern)
		if p == "" {
			continue
		}
		p = filepath.ToSlash(p)

		// Directory-style pattern, e.g. "node_modules/".
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimPrefix(strings.TrimSuffix(p, "/"), "./")
			if relPath == dir || strings.HasPrefix(relPath, dir+"/") {
				return true
			}
			continue
		}

		if ok, _ := filepath.Match(p, relPath); ok {
			return true
		}

		// Bare name pattern without slashes or wildcards matches as a
		// directory segment anywhere in the path.
		if !strings.Contains(p, "/") && !strings.ContainsAny(p, "*?[") {
			if strings.Contains("/"+relPath+"/", "/"+p+"/") {
				return true
			}
		}
	}
	return false
}
