package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteCreatesParentsAndReadsBack(t *testing.T) {
	fsys := New()
	path := filepath.Join(t.TempDir(), "out", "nested", "placeholder-100x50.png")

	if err := fsys.WriteFile(path, []byte("png")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("expected %q, got %q", "png", data)
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fsys := New()
	dir := t.TempDir()
	present := filepath.Join(dir, "present.webm")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{present, true},
		{dir, true},
		{filepath.Join(dir, "missing.webm"), false},
	}
	for _, tt := range tests {
		got, err := fsys.Exists(tt.path)
		if err != nil {
			t.Fatalf("Exists(%s) failed: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("Exists(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileSystem_MkdirAllAndRemove(t *testing.T) {
	fsys := New()
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := fsys.MkdirAll(dir); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if ok, _ := fsys.Exists(dir); !ok {
		t.Fatal("expected directory to exist")
	}
	if err := fsys.Remove(dir); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if ok, _ := fsys.Exists(dir); ok {
		t.Error("expected directory to be removed")
	}
}

func TestFileSystem_RenameReplacesTarget(t *testing.T) {
	fsys := New()
	dir := t.TempDir()
	tmp := filepath.Join(dir, ".placeholder.tmp")
	final := filepath.Join(dir, "placeholder.png")

	if err := fsys.WriteFile(final, []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := fsys.WriteFile(tmp, []byte("new")); err != nil {
		t.Fatal(err)
	}

	if err := fsys.Rename(tmp, final); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	data, _ := os.ReadFile(final)
	if string(data) != "new" {
		t.Errorf("expected replaced content, got %q", data)
	}
	if ok, _ := fsys.Exists(tmp); ok {
		t.Error("temp file should be gone after rename")
	}
}

func TestFileSystem_RenameMissingSource(t *testing.T) {
	fsys := New()
	dir := t.TempDir()

	if err := fsys.Rename(filepath.Join(dir, "nope"), filepath.Join(dir, "out")); err == nil {
		t.Error("expected error renaming a missing file")
	}
}
