package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// pythonExtractor parses Python with tree-sitter.
type pythonExtractor struct{}

func (pythonExtractor) extract(code []byte) ([]span, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, code)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Python code: %w", err)
	}
	defer tree.Close()

	var spans []span
	collectPythonFunctions(tree.RootNode(), code, &spans)
	return spans, nil
}

func collectPythonFunctions(node *sitter.Node, code []byte, spans *[]span) {
	if node.Type() == "function_definition" {
		nameNode := node.ChildByFieldName("name")
		if nameNode != nil {
			var params []string
			if p := node.ChildByFieldName("parameters"); p != nil {
				params = splitParameterList(p.Content(code))
			}
			*spans = append(*spans, span{
				name:       nameNode.Content(code),
				startLine:  int(node.StartPoint().Row),
				endLine:    int(node.EndPoint().Row),
				parameters: params,
				isAsync:    strings.HasPrefix(node.Content(code), "async"),
			})
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectPythonFunctions(node.Child(i), code, spans)
	}
}
