// Package style maps languages to documentation-comment conventions and
// builds the prompts sent to the generation backend.
package style

import "docwriter/internal/locator"

// Style is a named documentation-comment convention.
type Style string

const (
	StyleAuto    Style = "auto"
	StyleJSDoc   Style = "jsdoc"
	StyleTSDoc   Style = "tsdoc"
	StyleJavadoc Style = "javadoc"
	StyleGoogle  Style = "google"
	StyleNumpy   Style = "numpy"
	StyleRustdoc Style = "rustdoc"
	StyleGodoc   Style = "godoc"
	StyleXMLDoc  Style = "xmldoc"
	StylePHPDoc  Style = "phpdoc"
	StyleYard    Style = "yard"
	StyleSwift   Style = "swift"
)

// All lists every selectable style, including auto.
func All() []Style {
	return []Style{
		StyleAuto, StyleJSDoc, StyleTSDoc, StyleJavadoc, StyleGoogle,
		StyleNumpy, StyleRustdoc, StyleGodoc, StyleXMLDoc, StylePHPDoc,
		StyleYard, StyleSwift,
	}
}

// IsValid reports whether s names a known style.
func IsValid(s Style) bool {
	for _, known := range All() {
		if s == known {
			return true
		}
	}
	return false
}

// languageStyles is the static language-to-style table. Read-only.
var languageStyles = map[locator.Language]Style{
	locator.LanguageJavaScript: StyleJSDoc,
	locator.LanguageTypeScript: StyleTSDoc,
	locator.LanguageJava:       StyleJavadoc,
	locator.LanguagePython:     StyleGoogle,
	locator.LanguageRust:       StyleRustdoc,
	locator.LanguageGo:         StyleGodoc,
	locator.LanguageC:          StyleJavadoc,
	locator.LanguageCPP:        StyleJavadoc,
	locator.LanguageCSharp:     StyleXMLDoc,
	locator.LanguagePHP:        StylePHPDoc,
	locator.LanguageRuby:       StyleYard,
	locator.LanguageSwift:      StyleSwift,
	locator.LanguageKotlin:     StyleJavadoc,
}

// Resolve picks the effective style: an explicit override wins, otherwise the
// language's default, otherwise a generic block-comment style.
func Resolve(override Style, lang locator.Language) Style {
	if override != "" && override != StyleAuto && IsValid(override) {
		return override
	}
	if s, ok := languageStyles[lang]; ok {
		return s
	}
	return StyleJSDoc
}

// IsBraceComment reports whether s renders as a /** ... */ block, the family
// whose delimiters the cleanup step must guarantee.
func IsBraceComment(s Style) bool {
	switch s {
	case StyleJSDoc, StyleTSDoc, StyleJavadoc, StylePHPDoc:
		return true
	}
	return false
}
