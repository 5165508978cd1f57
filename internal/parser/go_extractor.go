package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
)

// goExtractor uses the standard library parser for Go sources.
type goExtractor struct{}

func (goExtractor) extract(code []byte) ([]span, error) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, "src.go", code, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go code: %w", err)
	}

	var spans []span
	ast.Inspect(file, func(n ast.Node) bool {
		decl, ok := n.(*ast.FuncDecl)
		if !ok {
			return true
		}

		start := fset.Position(decl.Pos())
		end := fset.Position(decl.End())
		spans = append(spans, span{
			name:       decl.Name.Name,
			startLine:  start.Line - 1,
			endLine:    end.Line - 1,
			parameters: goParameters(decl.Type.Params),
		})
		return true
	})
	return spans, nil
}

func goParameters(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}
	var params []string
	for _, field := range fields.List {
		typeName := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			params = append(params, typeName)
			continue
		}
		for _, name := range field.Names {
			params = append(params, fmt.Sprintf("%s %s", name.Name, typeName))
		}
	}
	return params
}
