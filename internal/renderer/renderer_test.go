package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/renderer/backend"
)

func newTestRenderer(w, h int) (*Renderer, *backend.NullBackend) {
	b := backend.NewNullBackend(w, h)
	_ = b.Init()
	return New(b, DefaultOptions()), b
}

func execute(t *testing.T, e *engine.Engine, cmds ...engine.Command) {
	t.Helper()
	if err := e.ExecuteAll(cmds...); err != nil {
		t.Fatalf("ExecuteAll failed: %v", err)
	}
}

func TestRenderLines(t *testing.T) {
	r, b := newTestRenderer(10, 4)
	e := engine.New(engine.WithContent("abc\ndef"))

	r.Render(e, Status{Name: "f.txt"})

	if got := b.Row(0); got != "abc       " {
		t.Errorf("row 0 = %q", got)
	}
	if got := b.Row(1); got != "def       " {
		t.Errorf("row 1 = %q", got)
	}
	if got := b.Row(2); !strings.HasPrefix(got, "~") {
		t.Errorf("row 2 = %q, want filler", got)
	}
	if b.ShowCount() != 1 {
		t.Errorf("Show called %d times, want 1", b.ShowCount())
	}
}

func TestRenderCursor(t *testing.T) {
	r, b := newTestRenderer(10, 4)
	e := engine.New(engine.WithContent("abc\ndef"))
	execute(t, e, engine.MoveCursor{Dir: engine.Down}, engine.MoveCursor{Dir: engine.Right})

	r.Render(e, Status{})

	x, y, visible := b.CursorPosition()
	if x != 1 || y != 1 || !visible {
		t.Errorf("cursor = (%d, %d, %v), want (1, 1, true)", x, y, visible)
	}
}

func TestRenderWideAndTab(t *testing.T) {
	r, b := newTestRenderer(12, 3)
	e := engine.New(engine.WithContent("世\tx"))
	execute(t, e,
		engine.MoveCursor{Dir: engine.Right},
		engine.MoveCursor{Dir: engine.Right},
		engine.MoveCursor{Dir: engine.Right},
	)

	r.Render(e, Status{})

	// 世 takes two cells, the tab fills to column 4.
	if got := b.Row(0); got != "世  x       " {
		t.Errorf("row 0 = %q", got)
	}
	if x, _, _ := b.CursorPosition(); x != 5 {
		t.Errorf("cursor x = %d, want 5", x)
	}
}

func TestRenderSelection(t *testing.T) {
	r, b := newTestRenderer(10, 3)
	e := engine.New(engine.WithContent("abcd"))
	execute(t, e,
		engine.MoveCursor{Dir: engine.Right},
		engine.BeginSelection{},
		engine.ExtendSelection{Dir: engine.Right},
		engine.ExtendSelection{Dir: engine.Right},
	)

	r.Render(e, Status{})

	for x, want := range []backend.Style{
		backend.StyleDefault, backend.StyleReverse, backend.StyleReverse, backend.StyleDefault,
	} {
		if _, got := b.Cell(x, 0); got != want {
			t.Errorf("cell %d style = %v, want %v", x, got, want)
		}
	}
}

func TestRenderSelectedLineBreak(t *testing.T) {
	r, b := newTestRenderer(10, 4)
	e := engine.New(engine.WithContent("ab\ncd"))
	execute(t, e,
		engine.MoveCursor{Dir: engine.Right},
		engine.MoveCursor{Dir: engine.Right},
		engine.BeginSelection{},
		engine.ExtendSelection{Dir: engine.Right},
	)

	r.Render(e, Status{})

	if _, style := b.Cell(2, 0); style != backend.StyleReverse {
		t.Error("selected line break should be highlighted")
	}
	if _, style := b.Cell(0, 1); style != backend.StyleDefault {
		t.Error("next line should not be highlighted")
	}
}

func TestRenderScrollsVertically(t *testing.T) {
	r, b := newTestRenderer(10, 4)
	e := engine.New(engine.WithContent("0\n1\n2\n3\n4\n5\n6\n7"))

	for range 6 {
		execute(t, e, engine.MoveCursor{Dir: engine.Down})
	}
	r.Render(e, Status{})

	// Three text rows with a margin of one line below the cursor.
	top, _ := r.Scroll()
	if top != 5 {
		t.Errorf("top = %d, want 5", top)
	}
	if got := b.Row(0); !strings.HasPrefix(got, "5") {
		t.Errorf("row 0 = %q, want line 5", got)
	}
	if _, y, _ := b.CursorPosition(); y != 1 {
		t.Errorf("cursor y = %d, want 1", y)
	}

	for range 6 {
		execute(t, e, engine.MoveCursor{Dir: engine.Up})
	}
	r.Render(e, Status{})
	if top, _ := r.Scroll(); top != 0 {
		t.Errorf("top = %d after scrolling back, want 0", top)
	}
}

func TestRenderScrollsHorizontally(t *testing.T) {
	r, b := newTestRenderer(5, 2)
	e := engine.New(engine.WithContent("abcdefgh"))
	for range 7 {
		execute(t, e, engine.MoveCursor{Dir: engine.Right})
	}

	r.Render(e, Status{})

	if _, left := r.Scroll(); left != 3 {
		t.Errorf("left = %d, want 3", left)
	}
	if got := b.Row(0); got != "defgh" {
		t.Errorf("row 0 = %q, want %q", got, "defgh")
	}
	if x, _, _ := b.CursorPosition(); x != 4 {
		t.Errorf("cursor x = %d, want 4", x)
	}
}

func TestRenderLineNumbers(t *testing.T) {
	b := backend.NewNullBackend(10, 3)
	opts := DefaultOptions()
	opts.ShowLineNumbers = true
	r := New(b, opts)
	e := engine.New(engine.WithContent("a\nb"))

	r.Render(e, Status{})

	if got := b.Row(0); got != "1 a       " {
		t.Errorf("row 0 = %q", got)
	}
	if x, _, _ := b.CursorPosition(); x != 2 {
		t.Errorf("cursor x = %d, want 2", x)
	}
}

func TestRenderStatusLine(t *testing.T) {
	r, b := newTestRenderer(40, 3)
	e := engine.New(engine.WithContent("abc"))
	execute(t, e, engine.InsertChar{Char: 'x'})

	r.Render(e, Status{Name: "notes.txt", Modified: e.Modified(), ReadOnly: true})

	status := b.Row(2)
	for _, want := range []string{"notes.txt", "[+]", "[RO]", "Ln 1, Col 2"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
	if _, style := b.Cell(39, 2); style != backend.StyleReverse {
		t.Error("status line should be reversed")
	}
}

func TestRenderStatusNoName(t *testing.T) {
	r, b := newTestRenderer(40, 2)
	r.Render(engine.New(), Status{Message: "saved"})

	status := b.Row(1)
	if !strings.Contains(status, "[No Name]") || !strings.Contains(status, "saved") {
		t.Errorf("status = %q", status)
	}
}

func TestRenderTinyScreen(t *testing.T) {
	r, b := newTestRenderer(3, 1)
	r.Render(engine.New(engine.WithContent("hello")), Status{Name: "long-name.txt"})

	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden without text rows")
	}
}

func TestRuneCells(t *testing.T) {
	tests := []struct {
		r    rune
		vcol int
		want int
	}{
		{'a', 0, 1},
		{'世', 0, 2},
		{'\t', 0, 4},
		{'\t', 3, 1},
		{'\t', 4, 4},
	}
	for _, tt := range tests {
		if got := runeCells(tt.r, tt.vcol, 4); got != tt.want {
			t.Errorf("runeCells(%q, %d) = %d, want %d", tt.r, tt.vcol, got, tt.want)
		}
	}
}

func TestVisualColumn(t *testing.T) {
	if got := visualColumn("a世b", 2, 4); got != 3 {
		t.Errorf("visualColumn = %d, want 3", got)
	}
	if got := visualColumn("ab", 5, 4); got != 2 {
		t.Errorf("visualColumn past end = %d, want 2", got)
	}
}
