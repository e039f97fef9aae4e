package vfs

import (
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"
)

var (
	errIsDir    = syscall.EISDIR
	errNotDir   = syscall.ENOTDIR
	errNotEmpty = syscall.ENOTEMPTY
)

// MemFS is an in-memory file system with slash-separated paths. Relative
// paths resolve against the root. It is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	nodes map[string]*memNode

	// failWrites makes every WriteFile fail with the stored error.
	failWrites error
}

// memNode is a file or, when dir is set, a directory.
type memNode struct {
	name    string
	data    []byte
	mode    fs.FileMode
	modTime time.Time
	dir     bool
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		nodes: map[string]*memNode{"/": newDir("/")},
	}
}

var _ VFS = (*MemFS)(nil)

func newDir(name string) *memNode {
	return &memNode{name: name, mode: fs.ModeDir | 0o755, modTime: time.Now(), dir: true}
}

func clean(name string) string {
	return path.Clean("/" + name)
}

func pathErr(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// ReadFile returns a copy of the file's content.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	name = clean(name)

	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[name]
	switch {
	case !ok:
		return nil, pathErr("read", name, fs.ErrNotExist)
	case n.dir:
		return nil, pathErr("read", name, errIsDir)
	}
	return slices.Clone(n.data), nil
}

// WriteFile creates or replaces a file. The parent directory must exist.
func (m *MemFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	name = clean(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrites != nil {
		return pathErr("write", name, m.failWrites)
	}
	if err := m.checkParent("write", name); err != nil {
		return err
	}
	if n, ok := m.nodes[name]; ok && n.dir {
		return pathErr("write", name, errIsDir)
	}

	m.nodes[name] = &memNode{
		name:    path.Base(name),
		data:    slices.Clone(data),
		mode:    perm.Perm(),
		modTime: time.Now(),
	}
	return nil
}

// checkParent reports an error unless name's parent is a directory.
// The caller holds the lock.
func (m *MemFS) checkParent(op, name string) error {
	parent, ok := m.nodes[path.Dir(name)]
	switch {
	case !ok:
		return pathErr(op, name, fs.ErrNotExist)
	case !parent.dir:
		return pathErr(op, name, errNotDir)
	}
	return nil
}

// Stat describes the file or directory at name.
func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	name = clean(name)

	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[name]
	if !ok {
		return nil, pathErr("stat", name, fs.ErrNotExist)
	}
	info := *n
	return &info, nil
}

// Rename moves a file. Directories cannot be renamed.
func (m *MemFS) Rename(oldName, newName string) error {
	oldName, newName = clean(oldName), clean(newName)

	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[oldName]
	switch {
	case !ok:
		return pathErr("rename", oldName, fs.ErrNotExist)
	case n.dir:
		return pathErr("rename", oldName, errIsDir)
	}
	if err := m.checkParent("rename", newName); err != nil {
		return err
	}
	if dst, ok := m.nodes[newName]; ok && dst.dir {
		return pathErr("rename", newName, errIsDir)
	}

	delete(m.nodes, oldName)
	moved := *n
	moved.name = path.Base(newName)
	m.nodes[newName] = &moved
	return nil
}

// Remove deletes a file or an empty directory.
func (m *MemFS) Remove(name string) error {
	name = clean(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[name]
	if !ok || name == "/" {
		return pathErr("remove", name, fs.ErrNotExist)
	}
	if n.dir {
		prefix := name + "/"
		for p := range m.nodes {
			if strings.HasPrefix(p, prefix) {
				return pathErr("remove", name, errNotEmpty)
			}
		}
	}
	delete(m.nodes, name)
	return nil
}

// MkdirAll creates a directory and any missing parents.
func (m *MemFS) MkdirAll(name string, perm fs.FileMode) error {
	name = clean(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	var missing []string
	for p := name; ; p = path.Dir(p) {
		n, ok := m.nodes[p]
		if ok {
			if !n.dir {
				return pathErr("mkdir", p, errNotDir)
			}
			break
		}
		missing = append(missing, p)
	}
	for _, p := range missing {
		d := newDir(path.Base(p))
		d.mode = fs.ModeDir | perm.Perm()
		m.nodes[p] = d
	}
	return nil
}

func (m *MemFS) Dir(name string) string { return path.Dir(clean(name)) }

func (m *MemFS) Base(name string) string { return path.Base(name) }

func (m *MemFS) Join(elem ...string) string { return path.Join(elem...) }

// AddFile writes a file, creating its parent directories.
func (m *MemFS) AddFile(name, content string) error {
	if err := m.MkdirAll(path.Dir(clean(name)), 0o755); err != nil {
		return err
	}
	return m.WriteFile(name, []byte(content), 0o644)
}

// FailWrites makes subsequent writes fail with err. A nil err restores
// normal behavior.
func (m *MemFS) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = err
}

// Files returns the sorted paths of all regular files.
func (m *MemFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var files []string
	for p, n := range m.nodes {
		if !n.dir {
			files = append(files, p)
		}
	}
	slices.Sort(files)
	return files
}

// memNode implements fs.FileInfo for Stat.

func (n *memNode) Name() string       { return n.name }
func (n *memNode) Size() int64        { return int64(len(n.data)) }
func (n *memNode) Mode() fs.FileMode  { return n.mode }
func (n *memNode) ModTime() time.Time { return n.modTime }
func (n *memNode) IsDir() bool        { return n.dir }
func (n *memNode) Sys() any           { return nil }
