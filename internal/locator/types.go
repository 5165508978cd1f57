package locator

import (
	"path/filepath"
	"strings"
)

// ParsedFunction represents a function or method located in source text.
type ParsedFunction struct {
	Name       string   // Function/method name ("anonymous" when the pattern captured none)
	StartLine  int      // Line of the matched signature (0-indexed)
	EndLine    int      // Last line of the body (0-indexed, inclusive)
	Parameters []string // Parameter tokens from the signature line
	IsAsync    bool     // Whether the signature line contains the async token
	Code       string   // Exact source slice from StartLine to EndLine
}

// Language represents supported programming languages
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguagePython     Language = "python"
	LanguageJava       Language = "java"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguageC          Language = "c"
	LanguageCPP        Language = "cpp"
	LanguageCSharp     Language = "csharp"
	LanguagePHP        Language = "php"
	LanguageRuby       Language = "ruby"
	LanguageSwift      Language = "swift"
	LanguageKotlin     Language = "kotlin"
)

var languageExts = map[string]Language{
	".js":    LanguageJavaScript,
	".jsx":   LanguageJavaScript,
	".mjs":   LanguageJavaScript,
	".cjs":   LanguageJavaScript,
	".ts":    LanguageTypeScript,
	".tsx":   LanguageTypeScript,
	".py":    LanguagePython,
	".java":  LanguageJava,
	".go":    LanguageGo,
	".rs":    LanguageRust,
	".c":     LanguageC,
	".h":     LanguageC,
	".cpp":   LanguageCPP,
	".cc":    LanguageCPP,
	".cxx":   LanguageCPP,
	".hpp":   LanguageCPP,
	".cs":    LanguageCSharp,
	".php":   LanguagePHP,
	".rb":    LanguageRuby,
	".swift": LanguageSwift,
	".kt":    LanguageKotlin,
	".kts":   LanguageKotlin,
}

// DetectLanguage detects the programming language based on file extension.
// Returns the empty Language for unsupported extensions.
func DetectLanguage(filePath string) Language {
	ext := strings.ToLower(filepath.Ext(filePath))
	return languageExts[ext]
}

// IsSupportedFile checks if a file is supported based on its extension.
func IsSupportedFile(filePath string) bool {
	return DetectLanguage(filePath) != ""
}

// SupportedExtensions returns all supported file extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(languageExts))
	for ext := range languageExts {
		exts = append(exts, ext)
	}
	return exts
}
