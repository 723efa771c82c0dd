package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.c")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture source: %s", err)
	}
	return path
}

func TestHandlerParsesValidSource(t *testing.T) {
	path := writeSource(t, `int add(int a, int b) { return a + b; }`)

	status := Handler([]string{path}, map[string]string{})
	if status != 0 {
		t.Fatalf("expected exit status 0, got %d", status)
	}
}

func TestHandlerReportsSyntaxErrors(t *testing.T) {
	path := writeSource(t, `int x = ;`)

	status := Handler([]string{path}, map[string]string{})
	if status == 0 {
		t.Fatalf("expected a non-zero exit status for malformed source")
	}
}

func TestHandlerRequiresAtLeastOneInput(t *testing.T) {
	status := Handler(nil, map[string]string{})
	if status == 0 {
		t.Fatalf("expected a non-zero exit status with no inputs")
	}
}

func TestHandlerRejectsMissingFile(t *testing.T) {
	status := Handler([]string{filepath.Join(t.TempDir(), "missing.c")}, map[string]string{})
	if status == 0 {
		t.Fatalf("expected a non-zero exit status for a missing input file")
	}
}

func TestHandlerUsesBuiltinTypedefNames(t *testing.T) {
	path := writeSource(t, `size_t n;`)

	status := Handler([]string{path}, map[string]string{"builtin-typedef": "size_t"})
	if status != 0 {
		t.Fatalf("expected exit status 0 with size_t seeded as a builtin typedef, got %d", status)
	}
}

func TestHandlerRejectsInvalidStartID(t *testing.T) {
	path := writeSource(t, `int x;`)

	status := Handler([]string{path}, map[string]string{"start-id": "not-a-number"})
	if status == 0 {
		t.Fatalf("expected a non-zero exit status for an invalid --start-id")
	}
}
