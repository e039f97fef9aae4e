// Package buffer provides the line buffer at the heart of the editing engine.
//
// A Buffer is an ordered sequence of Lines plus a two-dimensional cursor.
// The package provides:
//
//   - Loading from a text blob, a reader or a list of lines
//   - Character insertion, backward deletion and line splitting
//   - Multi-line insertion and range deletion (paste and cut)
//   - Cursor movement with clamping to the buffer bounds
//   - Canonical serialization (lines joined with "\n")
//   - Deep cloning for history snapshots
//
// Basic usage:
//
//	buf := buffer.NewFromString("ab\ncd")
//
//	buf.SplitLine(0, 2)   // ["ab", "", "cd"], cursor (1:0)
//	buf.DeleteChar(1, 0)  // ["ab", "cd"],     cursor (0:2)
//
//	text := buf.Text()    // "ab\ncd"
//
// Positions:
//
// Every Line carries a position that always equals its index in the buffer.
// Structural edits (split, merge, multi-line insert, range delete) renumber
// the affected lines before returning, so the invariant holds at every
// observable boundary. Validate checks it.
//
// Columns count Unicode scalar values (runes), not bytes or grapheme
// clusters. A column equal to the line length addresses the position after
// the last character.
//
// Addressing:
//
// Write operations that receive a position outside the buffer are no-ops.
// They report whether anything changed so callers can decide whether the
// edit is worth recording in history.
package buffer
