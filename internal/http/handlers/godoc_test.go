package handlers

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// Every swag annotation block opens with "// <FuncName> godoc".
func TestGodocHeadersMatchFunctionNames(t *testing.T) {
	files, err := filepath.Glob("*_handlers.go")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no handler files found")
	}

	fset := token.NewFileSet()
	for _, file := range files {
		f, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", file, err)
		}
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Doc == nil {
				continue
			}
			first := strings.TrimSpace(strings.TrimPrefix(fn.Doc.List[0].Text, "//"))
			name, isGodoc := strings.CutSuffix(first, " godoc")
			if isGodoc && name != fn.Name.Name {
				t.Errorf("%s: godoc header %q does not match function %s", file, name, fn.Name.Name)
			}
		}
	}
}
