// Package engine provides the editing session behind Quill.
//
// An Engine owns one buffer, its snapshot history and a selection, and is
// driven by abstract commands already decoded from keyboard input.
//
// # Architecture
//
// The engine is built on three sub-packages:
//
//   - buffer: ordered lines with a row/column cursor and primitive edits
//   - history: linear list of whole-buffer snapshots with undo/redo
//   - selection: anchor/extent range over buffer positions
//
// The system clipboard and the file system are never touched directly.
// They are reached through the Clipboard and FileWriter collaborators,
// which keeps the engine testable with in-memory fakes.
//
// # Thread Safety
//
// All Engine operations are thread-safe. Commands are serialized: each one
// runs to completion before the next is accepted.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("Hello"))
//
//	e.Execute(engine.MoveCursor{Dir: engine.Right})
//	e.Execute(engine.InsertChar{Char: 'x'})
//	e.Text() // "Hxello"
//
//	e.Execute(engine.Undo{})
//	e.Text() // "Hello"
//
// # History
//
// Every command that changes the text commits a snapshot of the whole
// buffer. Commit records one explicitly. Committing after an undo discards
// the redo branch. Save first moves to the newest snapshot, then writes it:
//
//	e := engine.New(engine.WithWriter(doc))
//	e.Execute(engine.InsertChar{Char: 'a'})
//	e.Execute(engine.Undo{})
//	e.Execute(engine.Save{}) // writes "a"
//
// # Clipboard
//
// Copy and Cut require an active selection; otherwise they do nothing.
// Cut removes the selected range only after the clipboard accepted it:
//
//	e := engine.New(engine.WithContent("abc"), engine.WithClipboard(cb))
//	e.Execute(engine.BeginSelection{})
//	e.Execute(engine.ExtendSelection{Dir: engine.Right})
//	e.Execute(engine.Cut{}) // cb holds "a", text is "bc"
//
// # Error Handling
//
// Addressing outside the buffer is not an error; such commands are ignored.
// Errors come only from collaborator failures (ErrClipboard, ErrWrite), a
// missing collaborator (ErrNoClipboard, ErrNoWriter) or a read-only engine
// (ErrReadOnly). A failed command leaves the session unchanged.
package engine
