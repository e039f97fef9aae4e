// Package vfs provides the file system behind documents.
//
// Documents read and write through the VFS interface, so tests run against
// MemFS while the editor itself uses OSFS.
package vfs

import (
	"fmt"
	"io/fs"
	"time"
)

// VFS is the set of file operations a document needs. Paths use the
// implementation's own separator rules.
type VFS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Stat(name string) (fs.FileInfo, error)
	Rename(oldName, newName string) error
	Remove(name string) error

	// Dir, Base and Join manipulate paths.
	Dir(name string) string
	Base(name string) string
	Join(elem ...string) string
}

// WriteFileAtomic writes data next to name under a temporary name and then
// renames it over name, so readers never observe a partially written file.
// An existing file keeps its permission bits.
func WriteFileAtomic(fsys VFS, name string, data []byte, perm fs.FileMode) error {
	info, err := fsys.Stat(name)
	switch {
	case err == nil && info.IsDir():
		return &fs.PathError{Op: "write", Path: name, Err: errIsDir}
	case err == nil:
		perm = info.Mode().Perm()
	}

	tmp := fsys.Join(fsys.Dir(name), fmt.Sprintf(".%s.%d.tmp", fsys.Base(name), time.Now().UnixNano()))
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := fsys.Rename(tmp, name); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}
