package app

import (
	"errors"
	"io/fs"
	"sync"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/vfs"
)

// Document is the file behind an editing session. It loads the file's
// text and writes it back in the line ending and BOM it was read with.
//
// Document implements engine.FileWriter.
type Document struct {
	mu     sync.Mutex
	fs     vfs.VFS
	path   string
	format vfs.Format
}

var _ engine.FileWriter = (*Document)(nil)

// OpenDocument reads the file at path and returns the document with its
// text converted to LF line endings. A missing file opens as an empty
// document and is created on the first save. An empty path opens a
// scratch document with no file.
func OpenDocument(fsys vfs.VFS, path string) (*Document, string, error) {
	doc := &Document{
		fs:     fsys,
		path:   path,
		format: vfs.Format{Ending: vfs.LineEndingLF},
	}
	if path == "" {
		return doc, "", nil
	}

	content, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, "", nil
		}
		return nil, "", NewOperationError("open", path, err)
	}
	if vfs.IsBinary(content) {
		return nil, "", NewOperationError("open", path, ErrBinaryFile)
	}

	text, format := vfs.Decode(content)
	doc.format = format
	return doc, text, nil
}

// Path returns the document's file path, or "" for a scratch document.
func (d *Document) Path() string {
	return d.path
}

// Name returns the file name for display.
func (d *Document) Name() string {
	if d.path == "" {
		return ""
	}
	return d.fs.Base(d.path)
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.path == ""
}

// Format returns the on-disk format the document is saved in.
func (d *Document) Format() vfs.Format {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.format
}

// WriteText replaces the whole file with text. The write goes through a
// temporary file, so a failed save leaves the previous contents intact.
func (d *Document) WriteText(text string) error {
	if d.path == "" {
		return NewOperationError("save", "", ErrNoFilePath)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	data := vfs.Encode(text, d.format)
	if err := vfs.WriteFileAtomic(d.fs, d.path, data, 0o644); err != nil {
		return NewOperationError("save", d.path, err)
	}
	return nil
}
