package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// jsExtractor parses JavaScript or TypeScript with tree-sitter. The tsx
// grammar covers plain TypeScript as well.
type jsExtractor struct {
	typescript bool
}

func (e jsExtractor) extract(code []byte) ([]span, error) {
	parser := sitter.NewParser()
	if e.typescript {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(javascript.GetLanguage())
	}

	tree, err := parser.ParseCtx(context.Background(), nil, code)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	var spans []span
	collectJSFunctions(tree.RootNode(), code, &spans)
	return spans, nil
}

func collectJSFunctions(node *sitter.Node, code []byte, spans *[]span) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration", "method_definition":
		if s, ok := jsNamedSpan(node, code); ok {
			*spans = append(*spans, s)
		}

	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() != "variable_declarator" {
				continue
			}
			if s, ok := jsVariableSpan(node, child, code); ok {
				*spans = append(*spans, s)
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectJSFunctions(node.Child(i), code, spans)
	}
}

func jsNamedSpan(node *sitter.Node, code []byte) (span, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return span{}, false
	}
	content := node.Content(code)
	return span{
		name:       nameNode.Content(code),
		startLine:  int(node.StartPoint().Row),
		endLine:    int(node.EndPoint().Row),
		parameters: jsParameters(node, code),
		isAsync:    strings.HasPrefix(content, "async"),
	}, true
}

// jsVariableSpan handles `const f = () => {}` and function expressions
// assigned to variables. The span starts at the declaration so the generated
// comment lands above the whole statement.
func jsVariableSpan(decl, declarator *sitter.Node, code []byte) (span, bool) {
	nameNode := declarator.ChildByFieldName("name")
	valueNode := declarator.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil {
		return span{}, false
	}

	switch valueNode.Type() {
	case "arrow_function", "function", "function_expression", "generator_function":
	default:
		return span{}, false
	}

	return span{
		name:       nameNode.Content(code),
		startLine:  int(decl.StartPoint().Row),
		endLine:    int(valueNode.EndPoint().Row),
		parameters: jsParameters(valueNode, code),
		isAsync:    strings.HasPrefix(valueNode.Content(code), "async"),
	}, true
}

func jsParameters(fn *sitter.Node, code []byte) []string {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		// Single-parameter arrow functions use the "parameter" field.
		params = fn.ChildByFieldName("parameter")
		if params == nil {
			return nil
		}
		return []string{params.Content(code)}
	}
	return splitParameterList(params.Content(code))
}
