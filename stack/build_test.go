package stack

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

// The stack must not build where platform.NativeWordCAS is undefined.
func TestBuildGate(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "stack.go", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	gated := false
	ast.Inspect(f, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if x, ok := sel.X.(*ast.Ident); ok && x.Name == "platform" && sel.Sel.Name == "NativeWordCAS" {
			gated = true
		}
		return !gated
	})
	if !gated {
		t.Fatal("stack.go does not reference platform.NativeWordCAS")
	}
}
