package buffer

import (
	"fmt"
	"strings"
)

// Point represents a cursor position as a row and column.
// Both Row and Column are 0-indexed.
// Column is measured in Unicode scalar values from the start of the line;
// Column == line length means "after the last character".
type Point struct {
	Row    int // 0-indexed line index
	Column int // 0-indexed rune offset within the line
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p Point) IsZero() bool {
	return p.Row == 0 && p.Column == 0
}

// Order returns the two points sorted so that start <= end.
func Order(a, b Point) (start, end Point) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

// Direction is a cursor movement direction.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses a direction name (case-insensitive).
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return 0, false
	}
}
