package buffer

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

// ErrInvariant is returned by Validate when the buffer's line numbering or
// cursor is inconsistent.
var ErrInvariant = errors.New("buffer invariant violated")

// Buffer is an ordered sequence of lines plus a cursor.
// It owns all structural text mutation.
//
// A Buffer always holds at least one line; an empty buffer is a single
// empty line with the cursor at (0:0). Use New or one of the NewFrom
// constructors; the zero value has no lines and every edit on it is a no-op.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	lines  []Line
	cursor Point
}

// New creates an empty buffer: a single empty line.
func New() *Buffer {
	return &Buffer{lines: []Line{NewLine(0, "")}}
}

// NewFromString creates a buffer by splitting s on line boundaries.
func NewFromString(s string) *Buffer {
	return NewFromLines(SplitLines(s))
}

// NewFromLines creates a buffer holding the given line texts in order.
// Texts must not contain line terminators.
func NewFromLines(texts []string) *Buffer {
	if len(texts) == 0 {
		return New()
	}
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = NewLine(i, t)
	}
	return &Buffer{lines: lines}
}

// NewFromReader creates a buffer from an io.Reader.
func NewFromReader(r io.Reader) (*Buffer, error) {
	// Read everything first; CRLF pairs may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewFromString(string(data)), nil
}

// SplitLines splits text into line texts. CRLF and lone CR are treated as
// LF. A trailing newline produces a trailing empty line, so joining the
// result with "\n" reproduces the normalized input exactly.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Read Operations

// Text joins all lines with "\n" in position order.
// This is the canonical serialization of the buffer.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.text)
	}
	return sb.String()
}

// String returns a debug listing of the buffer, one "N: text" row per line.
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, l := range b.lines {
		fmt.Fprintf(&sb, "%d: %s\n", l.position, l.text)
	}
	return sb.String()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the line at row.
func (b *Buffer) Line(row int) (Line, bool) {
	if row < 0 || row >= len(b.lines) {
		return Line{}, false
	}
	return b.lines[row], true
}

// LineText returns the text of the line at row, or "" if row is out of range.
func (b *Buffer) LineText(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row].text
}

// LineLen returns the length in runes of the line at row,
// or 0 if row is out of range.
func (b *Buffer) LineLen(row int) int {
	return utf8.RuneCountInString(b.LineText(row))
}

// Lines returns a copy of the buffer's lines.
func (b *Buffer) Lines() []Line {
	return slices.Clone(b.lines)
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Point {
	return b.cursor
}

// SetCursor moves the cursor to p, clamped to the buffer bounds.
// Returns the resulting cursor.
func (b *Buffer) SetCursor(p Point) Point {
	b.cursor = b.Clamp(p)
	return b.cursor
}

// Contains reports whether p is a valid cursor position in the buffer.
func (b *Buffer) Contains(p Point) bool {
	if p.Row < 0 || p.Row >= len(b.lines) {
		return false
	}
	return p.Column >= 0 && p.Column <= b.LineLen(p.Row)
}

// Clamp returns the nearest valid cursor position to p.
func (b *Buffer) Clamp(p Point) Point {
	if len(b.lines) == 0 {
		return Point{}
	}
	p.Row = max(0, min(p.Row, len(b.lines)-1))
	p.Column = max(0, min(p.Column, b.LineLen(p.Row)))
	return p
}

// Slice returns the line texts spanned by the range between a and c.
// The points are clamped and ordered; the first and last texts are cut to
// the range's columns.
func (b *Buffer) Slice(a, c Point) []string {
	if len(b.lines) == 0 {
		return nil
	}
	start, end := Order(b.Clamp(a), b.Clamp(c))

	_, first := splitAt(b.lines[start.Row].text, start.Column)
	if start.Row == end.Row {
		head, _ := splitAt(first, end.Column-start.Column)
		return []string{head}
	}

	out := make([]string, 0, end.Row-start.Row+1)
	out = append(out, first)
	for row := start.Row + 1; row < end.Row; row++ {
		out = append(out, b.lines[row].text)
	}
	last, _ := splitAt(b.lines[end.Row].text, end.Column)
	out = append(out, last)
	return out
}

// Write Operations
//
// Every write operation validates its address first and is a no-op
// (returning the unchanged cursor and false) when the address is outside
// the buffer. On success the buffer's cursor is moved to the returned point.

// InsertChar inserts ch into the line at row before offset column.
// Returns the new cursor (row, column+1). Line terminators are rejected;
// use SplitLine for those.
func (b *Buffer) InsertChar(row, column int, ch rune) (Point, bool) {
	if !b.Contains(Point{Row: row, Column: column}) || ch == '\n' || ch == '\r' {
		return b.cursor, false
	}

	head, tail := splitAt(b.lines[row].text, column)
	b.lines[row] = NewLine(row, head+string(ch)+tail)

	b.cursor = Point{Row: row, Column: column + 1}
	return b.cursor, true
}

// DeleteChar deletes backward from (row, column).
//
// With column > 0 the rune before column is removed and the cursor becomes
// (row, column-1). At column 0 of a line after the first, the line is merged
// onto the end of the previous line and the cursor lands at the join point.
// At (0:0) this is a no-op.
func (b *Buffer) DeleteChar(row, column int) (Point, bool) {
	if !b.Contains(Point{Row: row, Column: column}) {
		return b.cursor, false
	}

	if column > 0 {
		text := b.lines[row].text
		from, to := byteOffset(text, column-1), byteOffset(text, column)
		b.lines[row] = NewLine(row, text[:from]+text[to:])
		b.cursor = Point{Row: row, Column: column - 1}
		return b.cursor, true
	}

	if row == 0 {
		return b.cursor, false
	}

	prev := b.lines[row-1]
	join := prev.Len()
	b.lines[row-1] = NewLine(row-1, prev.text+b.lines[row].text)
	b.lines = slices.Delete(b.lines, row, row+1)
	b.renumber(row)

	b.cursor = Point{Row: row - 1, Column: join}
	return b.cursor, true
}

// SplitLine splits the line at row into two at column. The left part stays
// at row, the right part becomes a new line at row+1 and every later line
// shifts down by one. Returns the new cursor (row+1, 0).
func (b *Buffer) SplitLine(row, column int) (Point, bool) {
	if !b.Contains(Point{Row: row, Column: column}) {
		return b.cursor, false
	}

	head, tail := splitAt(b.lines[row].text, column)
	b.lines[row] = NewLine(row, head)
	b.lines = slices.Insert(b.lines, row+1, NewLine(row+1, tail))
	b.renumber(row + 2)

	b.cursor = Point{Row: row + 1, Column: 0}
	return b.cursor, true
}

// MoveCursor moves the cursor one step in dir.
//
// Up and Down are clamped to the first and last line and clamp the column
// to the destination line's length. Left and Right stay on the current
// line: they stop at column 0 and at the line length.
func (b *Buffer) MoveCursor(dir Direction) Point {
	if len(b.lines) == 0 {
		return b.cursor
	}

	c := b.Clamp(b.cursor)
	switch dir {
	case Up:
		if c.Row > 0 {
			c.Row--
		}
	case Down:
		if c.Row < len(b.lines)-1 {
			c.Row++
		}
	case Left:
		if c.Column > 0 {
			c.Column--
		}
	case Right:
		if c.Column < b.LineLen(c.Row) {
			c.Column++
		}
	}
	c.Column = min(c.Column, b.LineLen(c.Row))

	b.cursor = c
	return c
}

// InsertText inserts possibly multi-line text at p. The first line of text
// joins the text before p, the last line joins the text after p, and the
// lines in between are inserted whole. Returns the cursor placed right
// after the inserted text.
func (b *Buffer) InsertText(p Point, text string) (Point, bool) {
	if !b.Contains(p) || text == "" {
		return b.cursor, false
	}

	parts := SplitLines(text)
	head, tail := splitAt(b.lines[p.Row].text, p.Column)

	if len(parts) == 1 {
		b.lines[p.Row] = NewLine(p.Row, head+parts[0]+tail)
		b.cursor = Point{Row: p.Row, Column: p.Column + utf8.RuneCountInString(parts[0])}
		return b.cursor, true
	}

	inserted := make([]Line, len(parts))
	for i, part := range parts {
		inserted[i] = NewLine(p.Row+i, part)
	}
	last := parts[len(parts)-1]
	inserted[0] = NewLine(p.Row, head+parts[0])
	inserted[len(parts)-1] = NewLine(p.Row+len(parts)-1, last+tail)

	b.lines = slices.Replace(b.lines, p.Row, p.Row+1, inserted...)
	b.renumber(p.Row + len(parts))

	b.cursor = Point{Row: p.Row + len(parts) - 1, Column: utf8.RuneCountInString(last)}
	return b.cursor, true
}

// DeleteRange removes the text between a and c (in either order) and
// returns it joined with "\n". The cursor moves to the start of the range.
func (b *Buffer) DeleteRange(a, c Point) (string, bool) {
	if !b.Contains(a) || !b.Contains(c) {
		return "", false
	}
	start, end := Order(a, c)
	if start == end {
		return "", false
	}

	removed := strings.Join(b.Slice(start, end), "\n")

	head, _ := splitAt(b.lines[start.Row].text, start.Column)
	_, tail := splitAt(b.lines[end.Row].text, end.Column)
	merged := NewLine(start.Row, head+tail)
	b.lines = slices.Replace(b.lines, start.Row, end.Row+1, merged)
	b.renumber(start.Row + 1)

	b.cursor = start
	return removed, true
}

// Buffer State

// Clone returns an independent deep copy of the buffer, cursor included.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		lines:  slices.Clone(b.lines),
		cursor: b.cursor,
	}
}

// Equal reports whether two buffers hold the same lines and cursor.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return false
	}
	return b.cursor == other.cursor && slices.Equal(b.lines, other.lines)
}

// SameText reports whether two buffers hold the same lines,
// ignoring the cursor.
func (b *Buffer) SameText(other *Buffer) bool {
	if other == nil {
		return false
	}
	return slices.Equal(b.lines, other.lines)
}

// Validate checks that line positions run 0..N-1 in sequence order and
// that the cursor is a valid position.
func (b *Buffer) Validate() error {
	if len(b.lines) == 0 {
		return fmt.Errorf("%w: no lines", ErrInvariant)
	}
	for i, l := range b.lines {
		if l.position != i {
			return fmt.Errorf("%w: line at index %d has position %d", ErrInvariant, i, l.position)
		}
		if strings.ContainsAny(l.text, "\r\n") {
			return fmt.Errorf("%w: line %d contains a line terminator", ErrInvariant, i)
		}
	}
	if !b.Contains(b.cursor) {
		return fmt.Errorf("%w: cursor %s out of bounds", ErrInvariant, b.cursor)
	}
	return nil
}

// renumber resets positions of all lines at or after index from.
func (b *Buffer) renumber(from int) {
	for i := max(from, 0); i < len(b.lines); i++ {
		if b.lines[i].position != i {
			b.lines[i] = b.lines[i].withPosition(i)
		}
	}
}
