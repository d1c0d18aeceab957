// If you are AI: This file contains tests for the lint checks.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLintFile(t *testing.T) {
	good := "// If you are AI: ok.\n\npackage x\n\n// f does nothing.\nfunc f() {}\n"
	if got := lintFile("good.go", []byte(good), 300); len(got) != 0 {
		t.Errorf("Expected no violations, got %v", got)
	}

	bad := "package x\n\nfunc f() {}\n"
	got := lintFile("bad.go", []byte(bad), 2)
	if len(got) != 3 {
		t.Fatalf("Expected 3 violations, got %v", got)
	}
	if !strings.Contains(got[2], "function f missing comment") {
		t.Errorf("Unexpected violation %q", got[2])
	}

	if got := lintFile("bad_test.go", []byte(bad), 300); len(got) != 0 {
		t.Errorf("Test files need no header, got %v", got)
	}
}

func TestLintTreeSkipsUnderscoreDirs(t *testing.T) {
	root := t.TempDir()
	skipped := filepath.Join(root, "_examples")
	if err := os.MkdirAll(skipped, 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(skipped, "x.go"), []byte("package x\n\nfunc f() {}\n"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "y.go"), []byte("package y\n"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	got, err := lintTree(root, 300)
	if err != nil {
		t.Fatalf("lintTree() failed: %v", err)
	}
	if len(got) != 1 || !strings.Contains(got[0], "y.go") {
		t.Errorf("Expected only the header violation in y.go, got %v", got)
	}
}
