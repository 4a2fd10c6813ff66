// Package fileperm provides a linter to check for hardcoded file permissions
package fileperm

import (
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer is a custom analysis pass that checks for hardcoded file permissions
var Analyzer = &analysis.Analyzer{
	Name: "fileperm",
	Doc:  "checks for hardcoded file permission literals instead of using fileutil constants",
	Run:  run,
}

// WriteFilePermArgIndex is the index of the permission argument in WriteFile functions
const WriteFilePermArgIndex = 2

// literalSuggestions maps the octal spellings we flag to the constant that
// should replace them.
var literalSuggestions = map[string]string{
	"0o600": "fileutil.ReadWriteUserPermission",
	"0600":  "fileutil.ReadWriteUserPermission",
	"0o644": "fileutil.ReadWriteUserReadOthers",
	"0644":  "fileutil.ReadWriteUserReadOthers",
	"0o755": "fileutil.ReadWriteExecuteUserReadExecuteOthers",
	"0755":  "fileutil.ReadWriteExecuteUserReadExecuteOthers",
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		// First find all WriteFile call expressions
		var writeFileCalls []*ast.CallExpr
		ast.Inspect(file, func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpr); ok {
				if fun, ok := call.Fun.(*ast.SelectorExpr); ok {
					if strings.HasSuffix(fun.Sel.Name, "WriteFile") {
						writeFileCalls = append(writeFileCalls, call)
					}
				}
			}
			return true
		})

		// Now check each WriteFile call for hardcoded permissions
		for _, call := range writeFileCalls {
			if len(call.Args) <= WriteFilePermArgIndex {
				continue
			}
			lit, ok := call.Args[WriteFilePermArgIndex].(*ast.BasicLit)
			if !ok || lit.Kind != token.INT {
				continue
			}
			if suggestion, flagged := literalSuggestions[lit.Value]; flagged {
				pass.Reportf(lit.Pos(), "use '%s' instead of hardcoded '%s'", suggestion, lit.Value)
			}
		}
	}
	// Return a dummy non-nil value to satisfy the linter
	return (*struct{})(nil), nil
}
