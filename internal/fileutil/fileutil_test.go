package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.srt")

	if err := WriteFileAtomic(dest, []byte("first"), 0644); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := WriteFileAtomic(dest, []byte("second"), 0644); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected %q, got %q", "second", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the destination file, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "out.srt")
	if err := WriteFileAtomic(dest, []byte("x"), 0644); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestExistenceHelpers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.srt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if !DirExists(dir) || DirExists(file) || DirExists("") {
		t.Error("DirExists returned unexpected results")
	}
	if !FileExists(file) || FileExists(dir) || FileExists("") {
		t.Error("FileExists returned unexpected results")
	}
	if ok, err := Exists(filepath.Join(dir, "nope")); ok || err != nil {
		t.Errorf("Exists(missing): expected false, nil; got %v, %v", ok, err)
	}
}
