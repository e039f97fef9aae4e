package engine

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/buffer"
)

// Command is one abstract editing command, already decoded from input.
// The set of commands is closed; Execute dispatches on the concrete type.
type Command interface {
	// Name returns a short human-readable name used for logging and
	// snapshot descriptions.
	Name() string

	// Mutates reports whether the command can change buffer text.
	// Only mutating commands produce history snapshots.
	Mutates() bool
}

// InsertChar inserts a character at the cursor; the cursor advances.
// A line terminator is treated as NewLine.
type InsertChar struct {
	Char rune
}

func (c InsertChar) Name() string  { return fmt.Sprintf("Type '%c'", c.Char) }
func (c InsertChar) Mutates() bool { return true }

// DeleteBackward deletes the character before the cursor, merging with the
// previous line at column 0.
type DeleteBackward struct{}

func (DeleteBackward) Name() string  { return "Delete backward" }
func (DeleteBackward) Mutates() bool { return true }

// NewLine splits the current line at the cursor.
type NewLine struct{}

func (NewLine) Name() string  { return "Insert newline" }
func (NewLine) Mutates() bool { return true }

// MoveCursor moves the cursor one step.
type MoveCursor struct {
	Dir buffer.Direction
}

func (c MoveCursor) Name() string  { return "Move " + c.Dir.String() }
func (MoveCursor) Mutates() bool { return false }

// BeginSelection anchors a new selection at the cursor.
type BeginSelection struct{}

func (BeginSelection) Name() string  { return "Begin selection" }
func (BeginSelection) Mutates() bool { return false }

// ExtendSelection moves the active selection's extent one step.
// It is ignored when no selection is active.
type ExtendSelection struct {
	Dir buffer.Direction
}

func (c ExtendSelection) Name() string  { return "Extend selection " + c.Dir.String() }
func (ExtendSelection) Mutates() bool { return false }

// ClearSelection deactivates the selection (Escape).
type ClearSelection struct{}

func (ClearSelection) Name() string  { return "Clear selection" }
func (ClearSelection) Mutates() bool { return false }

// Cut hands the selected text to the clipboard, removes it from the buffer
// and clears the selection.
type Cut struct{}

func (Cut) Name() string  { return "Cut" }
func (Cut) Mutates() bool { return true }

// Copy hands the selected text to the clipboard. The selection stays active.
type Copy struct{}

func (Copy) Name() string  { return "Copy" }
func (Copy) Mutates() bool { return false }

// Paste inserts Text at the cursor. Text is usually obtained from the
// clipboard collaborator by the caller.
type Paste struct {
	Text string
}

func (Paste) Name() string  { return "Paste" }
func (Paste) Mutates() bool { return true }

// PasteClipboard reads the clipboard collaborator and pastes its contents.
type PasteClipboard struct{}

func (PasteClipboard) Name() string  { return "Paste" }
func (PasteClipboard) Mutates() bool { return true }

// Undo restores the previous history snapshot.
type Undo struct{}

func (Undo) Name() string  { return "Undo" }
func (Undo) Mutates() bool { return false }

// Redo restores the next history snapshot.
type Redo struct{}

func (Redo) Name() string  { return "Redo" }
func (Redo) Mutates() bool { return false }

// Commit records the current buffer as a new history snapshot.
type Commit struct{}

func (Commit) Name() string  { return "Commit" }
func (Commit) Mutates() bool { return false }

// Save moves history to its newest snapshot and hands that snapshot's text
// to the file writer collaborator.
type Save struct{}

func (Save) Name() string  { return "Save" }
func (Save) Mutates() bool { return false }
