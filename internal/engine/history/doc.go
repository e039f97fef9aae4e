// Package history provides undo/redo for the editing engine.
//
// History keeps full buffer snapshots rather than deltas. Each snapshot is a
// deep clone taken at commit time, so restoring one is a wholesale buffer
// replacement and cannot drift from what was committed.
//
// # Pointer Model
//
// History is a list of snapshots plus a pointer:
//
//	h := history.New(buf)   // [s0], pointer 0
//	h.Commit(buf, "Type")   // [s0 s1], pointer 1
//	h.Commit(buf, "Type")   // [s0 s1 s2], pointer 2
//
//	h.Undo()                // pointer 1, returns a clone of s1
//	h.Redo()                // pointer 2, returns a clone of s2
//
// Undo at the first snapshot and Redo at the last are no-ops that return the
// snapshot at the pointer.
//
// # Branch Pruning
//
// Committing while the pointer is not at the tail discards every snapshot
// after the pointer before appending:
//
//	h.Undo()                // [s0 s1 s2], pointer 1
//	h.Commit(buf, "Type")   // [s0 s1 s3], pointer 2
//
// # Saving
//
// ResetToTip moves the pointer to the newest snapshot. The engine calls it
// before writing the document so the persisted text always reflects the most
// recent edit.
//
// Every snapshot carries a UUID so callers can remember which snapshot was
// last saved and compare it to the current one.
package history
