package locator

import "regexp"

// languageSpec is the capability record looked up per language: the ordered
// signature patterns and how the end of a body is found.
type languageSpec struct {
	patterns     []*regexp.Regexp
	indentBlocks bool // true for offside-rule languages, false for brace-delimited ones
}

var jsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)?\s*\(`),
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>|[A-Za-z_$][\w$]*\s*=>)`),
	regexp.MustCompile(`^\s*(?:static\s+)?(?:async\s+)?(?:get\s+|set\s+)?\*?\s*([A-Za-z_$][\w$]*)\s*\([^)]*\)\s*\{`),
}

var tsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)?\s*\(`),
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::\s*[^=]+)?=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*(?::\s*[\w<>\[\],\s.|&]+)?\s*=>|[A-Za-z_$][\w$]*\s*=>)`),
	regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+)?(?:static\s+)?(?:async\s+)?(?:get\s+|set\s+)?\*?\s*([A-Za-z_$][\w$]*)\s*\([^)]*\)\s*(?::\s*[\w<>\[\],\s.|&]+)?\s*\{`),
}

var pythonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`),
}

var javaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+)?(?:static\s+)?(?:final\s+)?(?:synchronized\s+)?(?:abstract\s+)?[\w<>\[\],\s]+\s+([A-Za-z_]\w*)\s*\([^)]*\)\s*(?:throws\s+[\w,\s]+)?\s*\{`),
}

var goPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*func\s+(?:\([^)]+\)\s+)?([A-Za-z_]\w*)\s*\(`),
}

var rustPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+([A-Za-z_]\w*)`),
}

var cPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:static\s+|inline\s+|extern\s+)*[\w\*]+(?:\s+[\w\*]+)*[\s\*]+([A-Za-z_]\w*)\s*\([^;]*\)\s*\{?\s*$`),
}

var cppPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:static\s+|inline\s+|virtual\s+|constexpr\s+|explicit\s+)*[\w:<>,\*&\s]+[\s\*&]([A-Za-z_][\w:]*)\s*\([^;]*\)\s*(?:const\s*)?(?:noexcept\s*)?(?:override\s*)?\{?\s*$`),
}

var csharpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+|internal\s+)?(?:static\s+)?(?:async\s+)?(?:virtual\s+|override\s+|sealed\s+)?[\w<>\[\],\s]+\s+([A-Za-z_]\w*)\s*\([^)]*\)\s*\{?\s*$`),
}

var phpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+)?(?:static\s+)?function\s+&?([A-Za-z_]\w*)\s*\(`),
}

var rubyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*def\s+(?:self\.)?([A-Za-z_]\w*[?!=]?)`),
}

var swiftPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:public\s+|private\s+|internal\s+|fileprivate\s+|open\s+)?(?:static\s+|class\s+)?(?:override\s+)?func\s+([A-Za-z_]\w*)`),
}

var kotlinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+|internal\s+)?(?:suspend\s+)?(?:override\s+)?(?:inline\s+)?fun\s+(?:<[^>]*>\s*)?(?:[\w.]+\.)?([A-Za-z_]\w*)\s*\(`),
}

// defaultPatterns is the generic fallback for unrecognized language IDs.
var defaultPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`),
	regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)`),
	regexp.MustCompile(`^\s*(?:pub\s+)?fn\s+([A-Za-z_]\w*)`),
	regexp.MustCompile(`^\s*func\s+([A-Za-z_]\w*)`),
}

var languageSpecs = map[Language]languageSpec{
	LanguageJavaScript: {patterns: jsPatterns},
	LanguageTypeScript: {patterns: tsPatterns},
	LanguagePython:     {patterns: pythonPatterns, indentBlocks: true},
	LanguageJava:       {patterns: javaPatterns},
	LanguageGo:         {patterns: goPatterns},
	LanguageRust:       {patterns: rustPatterns},
	LanguageC:          {patterns: cPatterns},
	LanguageCPP:        {patterns: cppPatterns},
	LanguageCSharp:     {patterns: csharpPatterns},
	LanguagePHP:        {patterns: phpPatterns},
	LanguageRuby:       {patterns: rubyPatterns},
	LanguageSwift:      {patterns: swiftPatterns},
	LanguageKotlin:     {patterns: kotlinPatterns},
}

// specFor returns the capability record for lang, falling back to the generic
// pattern set for unrecognized language IDs.
func specFor(lang Language) languageSpec {
	if spec, ok := languageSpecs[lang]; ok {
		return spec
	}
	return languageSpec{patterns: defaultPatterns}
}
