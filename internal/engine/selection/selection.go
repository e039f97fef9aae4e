package selection

import (
	"fmt"
	"strings"

	"github.com/dshills/quill/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Selection is an optional anchored range over a buffer.
// Anchor is where the selection started; Extent is the end that moves.
// An inactive selection has no effect on other operations.
//
// The zero value is an inactive selection.
type Selection struct {
	anchor Point
	extent Point
	active bool
}

// Begin activates the selection with both ends at p.
func (s *Selection) Begin(p Point) {
	s.anchor = p
	s.extent = p
	s.active = true
}

// Clear deactivates the selection.
func (s *Selection) Clear() {
	s.active = false
}

// Active returns true if the selection is active.
func (s Selection) Active() bool {
	return s.active
}

// Anchor returns the fixed end of the selection.
func (s Selection) Anchor() Point {
	return s.anchor
}

// Extent returns the movable end of the selection.
func (s Selection) Extent() Point {
	return s.extent
}

// IsEmpty returns true if the selection is inactive or anchor == extent.
func (s Selection) IsEmpty() bool {
	return !s.active || s.anchor == s.extent
}

// Range returns the selection's ends ordered so that start <= end.
func (s Selection) Range() (start, end Point) {
	return buffer.Order(s.anchor, s.extent)
}

// IsForward returns true if the extent is at or after the anchor.
func (s Selection) IsForward() bool {
	return !s.extent.Before(s.anchor)
}

// Contains returns true if p lies within an active selection's range.
// The end of the range is exclusive.
func (s Selection) Contains(p Point) bool {
	if s.IsEmpty() {
		return false
	}
	start, end := s.Range()
	return !p.Before(start) && p.Before(end)
}

// ExtendLeft moves the extent one character left. At the start of a line
// the extent moves to the end of the previous line.
// Returns false if the selection is inactive or nothing moved.
func (s *Selection) ExtendLeft(b *buffer.Buffer) bool {
	return s.Extend(b, buffer.Left)
}

// ExtendRight moves the extent one character right. At the end of a line
// the extent moves to the start of the next line.
// Returns false if the selection is inactive or nothing moved.
func (s *Selection) ExtendRight(b *buffer.Buffer) bool {
	return s.Extend(b, buffer.Right)
}

// Extend moves the extent one step in dir, keeping it a valid position in b.
// Left and Right cross line boundaries; Up and Down clamp the column to the
// destination line.
func (s *Selection) Extend(b *buffer.Buffer, dir buffer.Direction) bool {
	if !s.active {
		return false
	}

	e := b.Clamp(s.extent)
	switch dir {
	case buffer.Left:
		if e.Column > 0 {
			e.Column--
		} else if e.Row > 0 {
			e.Row--
			e.Column = b.LineLen(e.Row)
		}
	case buffer.Right:
		if e.Column < b.LineLen(e.Row) {
			e.Column++
		} else if e.Row < b.LineCount()-1 {
			e.Row++
			e.Column = 0
		}
	case buffer.Up:
		if e.Row > 0 {
			e.Row--
		}
	case buffer.Down:
		if e.Row < b.LineCount()-1 {
			e.Row++
		}
	}
	e = b.Clamp(e)

	if e == s.extent {
		return false
	}
	s.extent = e
	return true
}

// Text returns the selected text joined with "\n".
// Returns "" for an inactive selection.
func (s Selection) Text(b *buffer.Buffer) string {
	if !s.active {
		return ""
	}
	return strings.Join(b.Slice(s.anchor, s.extent), "\n")
}

// Materialize returns a new buffer holding exactly the selected text: the
// lines from the lower to the higher row of the selection, with the first
// and last lines cut to the selected columns and positions starting at 0.
// An inactive selection materializes to an empty buffer.
func (s Selection) Materialize(b *buffer.Buffer) *buffer.Buffer {
	if !s.active {
		return buffer.New()
	}
	return buffer.NewFromLines(b.Slice(s.anchor, s.extent))
}

// Valid returns true if the selection is inactive or both ends are valid
// positions in b.
func (s Selection) Valid(b *buffer.Buffer) bool {
	return !s.active || (b.Contains(s.anchor) && b.Contains(s.extent))
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if !s.active {
		return "Selection(inactive)"
	}
	dir := "→"
	if !s.IsForward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%s%s%s)", s.anchor, dir, s.extent)
}
