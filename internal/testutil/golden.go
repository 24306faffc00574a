package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Golden compares textual output against testdata/<name>.golden.
// Set GOLDEN_UPDATE to rewrite the file from got instead of comparing.
func Golden(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if os.Getenv("GOLDEN_UPDATE") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("update %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v (rerun with GOLDEN_UPDATE=1 to create it)\ngot:\n%s", path, err, got)
	}
	if got != string(want) {
		t.Errorf("%s mismatch\nwant:\n%s\ngot:\n%s", path, want, got)
	}
}
