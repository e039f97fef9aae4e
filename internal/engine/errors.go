package engine

import "errors"

// Errors returned by engine operations.
//
// Out-of-range addressing is never an error: such commands are ignored.
// Errors are reserved for collaborator failures and for edits rejected by
// a read-only engine. In every case the engine state is left as it was
// before the command.
var (
	// ErrReadOnly indicates a text-mutating command on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrNoClipboard indicates a clipboard command with no clipboard configured.
	ErrNoClipboard = errors.New("no clipboard configured")

	// ErrNoWriter indicates a save with no file writer configured.
	ErrNoWriter = errors.New("no file writer configured")

	// ErrClipboard wraps a failure reported by the clipboard collaborator.
	ErrClipboard = errors.New("clipboard failed")

	// ErrWrite wraps a failure reported by the file writer collaborator.
	ErrWrite = errors.New("write failed")

	// ErrUnknownCommand indicates a Command type the engine does not handle.
	ErrUnknownCommand = errors.New("unknown command")
)
