package buffer

import "unicode/utf8"

// Line is a single line of buffer text together with its position.
// Line is an immutable value type; buffer operations replace lines
// rather than modifying them in place.
type Line struct {
	position int
	text     string
}

// NewLine creates a line at the given position.
func NewLine(position int, text string) Line {
	return Line{position: position, text: text}
}

// Position returns the line's ordinal position in its buffer.
func (l Line) Position() int {
	return l.position
}

// Text returns the line's text without any line terminator.
func (l Line) Text() string {
	return l.text
}

// Len returns the length of the line in runes.
func (l Line) Len() int {
	return utf8.RuneCountInString(l.text)
}

// withPosition returns a copy of the line at a new position.
func (l Line) withPosition(position int) Line {
	return Line{position: position, text: l.text}
}

// byteOffset returns the byte offset of rune column col in s. Bytes that
// are not valid UTF-8 count as one column each, matching
// utf8.RuneCountInString, so they survive edits unchanged.
func byteOffset(s string, col int) int {
	off := 0
	for ; col > 0 && off < len(s); col-- {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

// splitAt splits s at rune column col.
func splitAt(s string, col int) (head, tail string) {
	off := byteOffset(s, col)
	return s[:off], s[off:]
}
