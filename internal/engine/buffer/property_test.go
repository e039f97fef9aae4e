package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func genLines(t *rapid.T) []string {
	return rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9 é世]{0,12}`), 1, 6).Draw(t, "lines")
}

// TestProperty_RoundTrip verifies Text followed by NewFromString reproduces
// the line sequence exactly.
func TestProperty_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := genLines(t)
		b := NewFromLines(lines)

		again := NewFromString(b.Text())
		assert.Equal(t, lines, texts(again))
	})
}

// TestProperty_SplitDeleteInverse verifies that deleting backward at the start
// of a freshly split line restores the original line.
func TestProperty_SplitDeleteInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := genLines(t)
		b := NewFromLines(lines)
		original := b.Clone()

		row := rapid.IntRange(0, b.LineCount()-1).Draw(t, "row")
		col := rapid.IntRange(0, b.LineLen(row)).Draw(t, "col")

		cur, ok := b.SplitLine(row, col)
		require.True(t, ok)
		cur, ok = b.DeleteChar(cur.Row, cur.Column)
		require.True(t, ok)

		assert.True(t, b.SameText(original), "got %q, want %q", texts(b), lines)
		assert.Equal(t, Point{Row: row, Column: col}, cur)
	})
}

// TestProperty_InvariantsHold verifies numbering and cursor bounds after any
// sequence of edits addressed at the cursor.
func TestProperty_InvariantsHold(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := NewFromLines(genLines(t))

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			c := b.Cursor()
			switch rapid.IntRange(0, 4).Draw(t, "op") {
			case 0:
				b.InsertChar(c.Row, c.Column, rapid.RuneFrom([]rune("xyz é")).Draw(t, "ch"))
			case 1:
				b.DeleteChar(c.Row, c.Column)
			case 2:
				b.SplitLine(c.Row, c.Column)
			case 3:
				b.MoveCursor(Direction(rapid.IntRange(0, 3).Draw(t, "dir")))
			case 4:
				b.InsertText(c, rapid.StringMatching(`[ab\n]{0,6}`).Draw(t, "text"))
			}
			require.NoError(t, b.Validate())
		}
	})
}
