package app

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/vfs"
)

func TestOpenDocument(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/notes.txt", "one\r\ntwo\r\n")

	doc, text, err := OpenDocument(m, "/notes.txt")
	if err != nil {
		t.Fatalf("OpenDocument failed: %v", err)
	}
	if text != "one\ntwo\n" {
		t.Errorf("text = %q, want LF text", text)
	}
	if doc.Format().Ending != vfs.LineEndingCRLF {
		t.Errorf("Ending = %v, want crlf", doc.Format().Ending)
	}
	if doc.Name() != "notes.txt" || doc.Path() != "/notes.txt" || doc.IsScratch() {
		t.Errorf("unexpected identity: name %q path %q", doc.Name(), doc.Path())
	}
}

func TestOpenDocumentMissing(t *testing.T) {
	doc, text, err := OpenDocument(vfs.NewMemFS(), "/new.txt")
	if err != nil {
		t.Fatalf("missing file should open empty: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
	if doc.IsScratch() {
		t.Error("a missing file still has a path")
	}
}

func TestOpenDocumentScratch(t *testing.T) {
	doc, _, err := OpenDocument(vfs.NewMemFS(), "")
	if err != nil {
		t.Fatalf("OpenDocument failed: %v", err)
	}
	if !doc.IsScratch() || doc.Name() != "" {
		t.Error("empty path should be a scratch document")
	}
	if err := doc.WriteText("x"); !errors.Is(err, ErrNoFilePath) {
		t.Errorf("expected ErrNoFilePath, got %v", err)
	}
}

func TestOpenDocumentErrors(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/bin.dat", "ab\x00cd")
	_ = m.MkdirAll("/dir", 0o755)

	_, _, err := OpenDocument(m, "/bin.dat")
	if !errors.Is(err, ErrBinaryFile) {
		t.Errorf("expected ErrBinaryFile, got %v", err)
	}

	_, _, err = OpenDocument(m, "/dir")
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "open" {
		t.Errorf("expected open OperationError, got %v", err)
	}
}

func TestDocumentWriteKeepsFormat(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/win.txt", "\xEF\xBB\xBFa\r\nb")

	doc, text, err := OpenDocument(m, "/win.txt")
	if err != nil {
		t.Fatalf("OpenDocument failed: %v", err)
	}
	if text != "a\nb" {
		t.Fatalf("text = %q", text)
	}

	if err := doc.WriteText("a\nb\nc"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	data, _ := m.ReadFile("/win.txt")
	if string(data) != "\xEF\xBB\xBFa\r\nb\r\nc" {
		t.Errorf("saved %q", data)
	}
}

func TestDocumentWriteFailureKeepsFile(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/keep.txt", "original")
	doc, _, _ := OpenDocument(m, "/keep.txt")

	m.FailWrites(fs.ErrPermission)
	err := doc.WriteText("changed")
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "save" || opErr.Target != "/keep.txt" {
		t.Errorf("expected save OperationError, got %v", err)
	}

	data, _ := m.ReadFile("/keep.txt")
	if string(data) != "original" {
		t.Errorf("file changed to %q", data)
	}
}

func TestDocumentAsEngineWriter(t *testing.T) {
	m := vfs.NewMemFS()
	doc, text, _ := OpenDocument(m, "/out.txt")

	e := engine.New(engine.WithContent(text), engine.WithWriter(doc))
	if err := e.ExecuteAll(engine.InsertChar{Char: 'h'}, engine.InsertChar{Char: 'i'}, engine.Save{}); err != nil {
		t.Fatalf("ExecuteAll failed: %v", err)
	}

	data, err := m.ReadFile("/out.txt")
	if err != nil || string(data) != "hi" {
		t.Errorf("saved %q, %v", data, err)
	}

	// Saving twice replaces the file rather than appending.
	if err := e.Execute(engine.Save{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, _ = m.ReadFile("/out.txt")
	if string(data) != "hi" {
		t.Errorf("second save gave %q", data)
	}

	m.FailWrites(fs.ErrPermission)
	if err := e.Execute(engine.Save{}); !errors.Is(err, engine.ErrWrite) {
		t.Errorf("expected ErrWrite, got %v", err)
	}
}

func TestOperationError(t *testing.T) {
	err := NewOperationError("save", "/a.txt", fs.ErrPermission).WithContext("atomic")
	want := "save /a.txt (atomic): permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("OperationError should unwrap to its cause")
	}

	var nilErr *OperationError
	if nilErr.WithContext("x") != nil || nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil OperationError should be safe")
	}
}
