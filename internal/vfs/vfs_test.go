package vfs

import (
	"errors"
	"io/fs"
	"testing"
)

// TestVFSInterface runs a suite of tests against any VFS implementation.
// This ensures both OSFS and MemFS behave consistently.
func TestVFSInterface(t *testing.T) {
	t.Run("MemFS", func(t *testing.T) {
		testVFSOperations(t, NewMemFS(), "/")
	})

	t.Run("OSFS", func(t *testing.T) {
		testVFSOperations(t, NewOSFS(), t.TempDir())
	})
}

func testVFSOperations(t *testing.T, vfs VFS, root string) {
	t.Run("WriteFile_ReadFile", func(t *testing.T) {
		path := vfs.Join(root, "test.txt")
		content := []byte("hello world")

		if err := vfs.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		got, err := vfs.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content mismatch: got %q, want %q", got, content)
		}
	})

	t.Run("ReadFile_Missing", func(t *testing.T) {
		_, err := vfs.ReadFile(vfs.Join(root, "missing.txt"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected ErrNotExist, got %v", err)
		}
	})

	t.Run("Stat", func(t *testing.T) {
		path := vfs.Join(root, "stat_test.txt")
		if err := vfs.WriteFile(path, []byte("test content"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		info, err := vfs.Stat(path)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		if info.Name() != "stat_test.txt" {
			t.Errorf("name: got %q", info.Name())
		}
		if info.Size() != 12 {
			t.Errorf("size: got %d, want 12", info.Size())
		}
		if info.IsDir() {
			t.Error("should not be a directory")
		}
	})

	t.Run("Rename", func(t *testing.T) {
		oldPath := vfs.Join(root, "old.txt")
		newPath := vfs.Join(root, "new.txt")
		if err := vfs.WriteFile(oldPath, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if err := vfs.Rename(oldPath, newPath); err != nil {
			t.Fatalf("Rename failed: %v", err)
		}
		if exists(vfs, oldPath) {
			t.Error("old path should not exist")
		}
		if !exists(vfs, newPath) {
			t.Error("new path should exist")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		file := vfs.Join(root, "f.txt")
		if err := vfs.WriteFile(file, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if err := vfs.Remove(file); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if exists(vfs, file) {
			t.Error("file should be removed")
		}
	})

	t.Run("WriteFileAtomic", func(t *testing.T) {
		path := vfs.Join(root, "atomic.txt")
		if err := vfs.WriteFile(path, []byte("old"), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if err := WriteFileAtomic(vfs, path, []byte("new"), 0644); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		got, err := vfs.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(got) != "new" {
			t.Errorf("got %q, want %q", got, "new")
		}

		info, err := vfs.Stat(path)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("permissions should be kept, got %v", info.Mode().Perm())
		}
	})
}

func TestWriteFileAtomicFailureKeepsOriginal(t *testing.T) {
	m := NewMemFS()
	if err := m.AddFile("/doc.txt", "original"); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}

	boom := errors.New("disk full")
	m.FailWrites(boom)

	err := WriteFileAtomic(m, "/doc.txt", []byte("replacement"), 0644)
	if !errors.Is(err, boom) {
		t.Fatalf("expected disk full error, got %v", err)
	}

	got, _ := m.ReadFile("/doc.txt")
	if string(got) != "original" {
		t.Errorf("original should be untouched, got %q", got)
	}
	if files := m.Files(); len(files) != 1 {
		t.Errorf("no temp file should remain, got %v", files)
	}
}

func TestWriteFileAtomicDirectory(t *testing.T) {
	m := NewMemFS()
	if err := m.MkdirAll("/dir", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := WriteFileAtomic(m, "/dir", []byte("x"), 0644); err == nil {
		t.Error("expected error writing over a directory")
	}
}

func TestOSFSStatMissing(t *testing.T) {
	fsys := NewOSFS()
	_, err := fsys.Stat(fsys.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
