// If you are AI: This script checks every Go file for the line limit, the AI header
// and a doc comment on each function.

package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// header marks the file summary every Go file starts with.
const header = "If you are AI:"

// main walks the given directory and exits non-zero on any violation.
func main() {
	maxLines := flag.Int("max-lines", 300, "Maximum lines per Go file")
	flag.Parse()
	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	failures, err := lintTree(root, *maxLines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}
	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "Lint violations:\n")
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "  %s\n", f)
		}
		os.Exit(1)
	}
}

// lintTree checks all Go files under root. Directories starting with '_' or '.',
// vendor and testdata are skipped, as the go tool does.
func lintTree(root string, maxLines int) ([]string, error) {
	var failures []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		failures = append(failures, lintFile(path, data, maxLines)...)
		return nil
	})
	return failures, err
}

// lintFile returns the violations in one file. Test files need neither the header
// nor function comments.
func lintFile(path string, data []byte, maxLines int) []string {
	var failures []string
	if lines := strings.Count(string(data), "\n"); lines > maxLines {
		failures = append(failures, fmt.Sprintf("%s: %d lines (max %d)", path, lines, maxLines))
	}
	if strings.HasSuffix(path, "_test.go") {
		return failures
	}
	if !strings.Contains(string(data), header) {
		failures = append(failures, fmt.Sprintf("%s: missing %q header", path, header))
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, data, parser.ParseComments)
	if err != nil {
		return append(failures, fmt.Sprintf("%s: %v", path, err))
	}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc != nil {
			continue
		}
		pos := fset.Position(fn.Pos())
		failures = append(failures, fmt.Sprintf("%s:%d: function %s missing comment", path, pos.Line, fn.Name.Name))
	}
	return failures
}
