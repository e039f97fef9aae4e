// Package selection provides the character-range selection model.
//
// Selections use an anchor/extent model where:
//   - Anchor: the position where the selection started
//   - Extent: the end that grows or shrinks as the user extends it
//
// Keeping the pair un-normalized lets extension work the same in either
// direction; Range returns the ordered ends when a caller needs them.
//
// Basic usage:
//
//	var sel selection.Selection
//	sel.Begin(buf.Cursor())
//	sel.ExtendRight(buf)
//	sel.ExtendRight(buf)
//
//	clip := sel.Materialize(buf) // standalone buffer with the selected text
//	sel.Clear()
//
// A Selection does not hold a reference to its buffer; operations that need
// the text take the buffer as an argument. Callers are responsible for
// clearing the selection when the buffer changes underneath it.
package selection
