package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out", "types.gen.rs")

	if err := writeFileAtomic(target, []byte("pub trait Kind_0 {}\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != "pub trait Kind_0 {}\n" {
		t.Errorf("content mismatch: %q", data)
	}

	// Overwrite must win and leave no temp files behind.
	if err := writeFileAtomic(target, []byte("updated\n")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}
