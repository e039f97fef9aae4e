package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/history"
	"github.com/dshills/quill/internal/engine/selection"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a row/column cursor position.
	Point = buffer.Point

	// Direction is a cursor movement direction.
	Direction = buffer.Direction

	// Selection is an anchored character range.
	Selection = selection.Selection

	// EntryInfo describes a history snapshot.
	EntryInfo = history.EntryInfo
)

// Re-export constants.
const (
	Up    = buffer.Up
	Down  = buffer.Down
	Left  = buffer.Left
	Right = buffer.Right
)

// Engine is the editing session: a buffer, its history and a selection,
// driven one command at a time through Execute.
//
// Each command runs to completion before the next is accepted. Engine
// methods are safe to call from multiple goroutines; they serialize on an
// internal mutex.
type Engine struct {
	mu sync.Mutex

	// Core components
	buf     *buffer.Buffer
	history *history.History
	sel     selection.Selection

	// Collaborators
	clipboard Clipboard
	writer    FileWriter
	logger    Logger

	// Configuration
	readOnly bool

	// savedID is the snapshot last written by Save (or loaded).
	savedID uuid.UUID

	// Initialization
	initContent string
}

// New creates an engine. With no content the buffer is a single empty line.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: nopLogger{},
	}

	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.NewFromString(e.initContent)
	e.initContent = ""
	e.history = history.New(e.buf)
	e.savedID = e.history.Current().ID

	return e
}

// NewFromReader creates an engine with content read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithContent(string(data))}, opts...)...), nil
}

// Execute runs one command against the session.
//
// Commands addressing positions outside the buffer, or requiring a selection
// when none is active, are ignored and return nil. An error is returned only
// for read-only rejections and collaborator failures, and in those cases the
// buffer, history and selection are unchanged.
func (e *Engine) Execute(cmd Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Debug("execute %s at %s", cmd.Name(), e.buf.Cursor())

	if e.readOnly && cmd.Mutates() {
		return ErrReadOnly
	}

	switch c := cmd.(type) {
	case InsertChar:
		if c.Char == '\n' || c.Char == '\r' {
			e.splitLine(c.Name())
			return nil
		}
		e.edit(c.Name(), func(p Point) bool {
			_, ok := e.buf.InsertChar(p.Row, p.Column, c.Char)
			return ok
		})
	case DeleteBackward:
		e.edit(c.Name(), func(p Point) bool {
			_, ok := e.buf.DeleteChar(p.Row, p.Column)
			return ok
		})
	case NewLine:
		e.splitLine(c.Name())
	case MoveCursor:
		e.buf.MoveCursor(c.Dir)
	case BeginSelection:
		e.sel.Begin(e.buf.Cursor())
	case ExtendSelection:
		if e.sel.Extend(e.buf, c.Dir) {
			e.buf.SetCursor(e.sel.Extent())
		}
	case ClearSelection:
		e.sel.Clear()
	case Copy:
		if !e.sel.Active() {
			return nil
		}
		return e.writeClipboard(e.sel.Materialize(e.buf).Text())
	case Cut:
		return e.cut()
	case Paste:
		e.paste(c.Text)
	case PasteClipboard:
		if e.clipboard == nil {
			return ErrNoClipboard
		}
		text, err := e.clipboard.ReadText()
		if err != nil {
			e.logger.Warn("clipboard read failed: %v", err)
			return fmt.Errorf("%w: %w", ErrClipboard, err)
		}
		e.paste(text)
	case Undo:
		if e.history.CanUndo() {
			e.restore(e.history.Undo())
		}
	case Redo:
		if e.history.CanRedo() {
			e.restore(e.history.Redo())
		}
	case Commit:
		e.commit(c.Name())
	case Save:
		return e.save()
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}

	return nil
}

// ExecuteAll runs commands in order, stopping at the first error.
func (e *Engine) ExecuteAll(cmds ...Command) error {
	for _, cmd := range cmds {
		if err := e.Execute(cmd); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), err)
		}
	}
	return nil
}

// edit applies a text mutation at the cursor. When the buffer changed, the
// selection (which referred to the old text) is cleared and a snapshot is
// committed.
func (e *Engine) edit(name string, fn func(cursor Point) bool) {
	if !fn(e.buf.Cursor()) {
		e.logger.Debug("%s: no change", name)
		return
	}
	e.sel.Clear()
	e.commit(name)
}

func (e *Engine) splitLine(name string) {
	e.edit(name, func(p Point) bool {
		_, ok := e.buf.SplitLine(p.Row, p.Column)
		return ok
	})
}

func (e *Engine) paste(text string) {
	e.edit("Paste", func(p Point) bool {
		_, ok := e.buf.InsertText(p, text)
		return ok
	})
}

// cut writes the selection to the clipboard and only then removes it, so a
// clipboard failure leaves the buffer and selection untouched.
func (e *Engine) cut() error {
	if !e.sel.Active() {
		return nil
	}
	if err := e.writeClipboard(e.sel.Materialize(e.buf).Text()); err != nil {
		return err
	}

	start, end := e.sel.Range()
	e.sel.Clear()
	if _, ok := e.buf.DeleteRange(start, end); ok {
		e.commit("Cut")
	}
	return nil
}

func (e *Engine) writeClipboard(text string) error {
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	if err := e.clipboard.WriteText(text); err != nil {
		e.logger.Warn("clipboard write failed: %v", err)
		return fmt.Errorf("%w: %w", ErrClipboard, err)
	}
	return nil
}

// restore replaces the buffer wholesale with a history snapshot.
func (e *Engine) restore(b *buffer.Buffer) {
	e.buf = b
	e.sel.Clear()
	e.logger.Debug("restored snapshot %d/%d", e.history.Index()+1, e.history.Len())
}

func (e *Engine) commit(description string) {
	snap := e.history.Commit(e.buf, description)
	e.logger.Debug("commit %s (%s), %d snapshots", description, snap.ID, e.history.Len())
}

// save writes the newest snapshot. History and buffer move to the tip only
// after the writer succeeded.
func (e *Engine) save() error {
	if e.readOnly {
		return ErrReadOnly
	}
	if e.writer == nil {
		return ErrNoWriter
	}

	tip := e.history.Tip()
	if err := e.writer.WriteText(tip.Text()); err != nil {
		e.logger.Warn("save failed: %v", err)
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if !e.history.AtTip() {
		e.history.ResetToTip()
		e.restore(tip.Buffer())
	}
	e.savedID = tip.ID
	e.logger.Info("saved snapshot %s", tip.ID)
	return nil
}

// Read Operations

// Text returns the buffer's canonical serialization.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Text()
}

// Buffer returns a copy of the current buffer.
func (e *Engine) Buffer() *buffer.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Clone()
}

// Cursor returns the current cursor position.
func (e *Engine) Cursor() Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Cursor()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.LineCount()
}

// LineText returns the text of the line at row.
func (e *Engine) LineText(row int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.LineText(row)
}

// Selection returns a copy of the current selection.
func (e *Engine) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel
}

// SelectionText returns the selected text, or "" with no active selection.
func (e *Engine) SelectionText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Text(e.buf)
}

// History State

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// HistoryInfo returns info about every history snapshot, oldest first.
func (e *Engine) HistoryInfo() []EntryInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Info()
}

// Modified returns true if the current snapshot is not the one last saved.
func (e *Engine) Modified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Current().ID != e.savedID
}

// Configuration

// IsReadOnly returns true if the engine rejects text mutations.
func (e *Engine) IsReadOnly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.readOnly
}

// SetClipboard replaces the clipboard collaborator.
func (e *Engine) SetClipboard(c Clipboard) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clipboard = c
}

// SetWriter replaces the file writer collaborator.
func (e *Engine) SetWriter(w FileWriter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.writer = w
}
