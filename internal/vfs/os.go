package vfs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFS is the operating system's file system.
type OSFS struct{}

// NewOSFS returns the OS file system.
func NewOSFS() OSFS {
	return OSFS{}
}

var _ VFS = OSFS{}

func (OSFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (OSFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (OSFS) Rename(oldName, newName string) error { return os.Rename(oldName, newName) }

func (OSFS) Remove(name string) error { return os.Remove(name) }

func (OSFS) Dir(name string) string { return filepath.Dir(name) }

func (OSFS) Base(name string) string { return filepath.Base(name) }

func (OSFS) Join(elem ...string) string { return filepath.Join(elem...) }
