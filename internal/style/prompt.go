package style

import (
	"fmt"
	"strings"

	"docwriter/internal/models"
)

// templates holds one illustrative skeleton per style. The skeleton shows the
// model the exact delimiters and tag vocabulary to reproduce.
var templates = map[Style]string{
	StyleJSDoc: `/**
 * Description of the function.
 * @param {type} name - Parameter description.
 * @returns {type} Return value description.
 */`,
	StyleTSDoc: `/**
 * Description of the function.
 * @param name - Parameter description.
 * @returns Return value description.
 */`,
	StyleJavadoc: `/**
 * Description of the method.
 * @param name parameter description
 * @return return value description
 * @throws ExceptionType condition description
 */`,
	StyleGoogle: `"""Description of the function.

Args:
    name: Parameter description.

Returns:
    Return value description.
"""`,
	StyleNumpy: `"""Description of the function.

Parameters
----------
name : type
    Parameter description.

Returns
-------
type
    Return value description.
"""`,
	StyleRustdoc: `/// Description of the function.
///
/// # Arguments
///
/// * ` + "`name`" + ` - Parameter description.
///
/// # Returns
///
/// Return value description.`,
	StyleGodoc: `// FunctionName does something.
// It takes name and returns a value.`,
	StyleXMLDoc: `/// <summary>
/// Description of the method.
/// </summary>
/// <param name="name">Parameter description.</param>
/// <returns>Return value description.</returns>`,
	StylePHPDoc: `/**
 * Description of the function.
 * @param type $name Parameter description.
 * @return type Return value description.
 */`,
	StyleYard: `# Description of the method.
# @param name [Type] parameter description
# @return [Type] return value description`,
	StyleSwift: `/// Description of the function.
/// - Parameter name: Parameter description.
/// - Returns: Return value description.`,
}

// Template returns the canonical skeleton for s, defaulting to the generic
// block-comment skeleton for unknown tags.
func Template(s Style) string {
	if t, ok := templates[s]; ok {
		return t
	}
	return templates[StyleJSDoc]
}

// BuildPrompt encodes the generation contract: the style skeleton, the code
// fenced with its language tag, and directives restricting the output to the
// comment itself.
func BuildPrompt(req models.DocumentationRequest, responseLanguage string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a %s documentation comment for the following %s code.\n\n", req.Style, req.Language)
	fmt.Fprintf(&b, "Follow this format exactly:\n%s\n\n", Template(Style(req.Style)))
	fmt.Fprintf(&b, "```%s\n%s\n```\n\n", req.Language, req.Code)

	b.WriteString("Output only the documentation comment itself, with no prose, explanation, or code outside it.")
	if req.IncludeTypes {
		b.WriteString(" Include type annotations for every parameter and the return value.")
	}
	if req.IncludeExamples {
		b.WriteString(" Include one short usage example.")
	}
	if responseLanguage != "" {
		fmt.Fprintf(&b, " Write the descriptions in %s.", responseLanguage)
	}

	return b.String()
}
