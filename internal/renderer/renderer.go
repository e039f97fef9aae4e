package renderer

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/renderer/backend"
)

// Source provides the session state to draw. *engine.Engine satisfies it.
type Source interface {
	LineCount() int
	LineText(row int) string
	Cursor() engine.Point
	Selection() engine.Selection
}

// Status is the information shown in the status line.
type Status struct {
	Name     string
	Modified bool
	ReadOnly bool

	// Message is shown right-aligned, before the cursor position.
	Message string
}

// Options configures the renderer.
type Options struct {
	ShowLineNumbers bool // Show line numbers in gutter
	TabWidth        int  // Cells per tab stop
	ScrollMargin    int  // Lines to keep above and below cursor
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers: false,
		TabWidth:        4,
		ScrollMargin:    2,
	}
}

// Renderer draws frames to a backend. It keeps the scroll offsets between
// frames so the view only moves when the cursor leaves it.
type Renderer struct {
	mu      sync.Mutex
	opts    Options
	backend backend.Backend

	top  int // first visible buffer row
	left int // first visible cell column
}

// New creates a renderer for the backend.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultOptions().TabWidth
	}
	if opts.ScrollMargin < 0 {
		opts.ScrollMargin = 0
	}
	return &Renderer{opts: opts, backend: b}
}

// Scroll returns the first visible row and cell column.
func (r *Renderer) Scroll() (top, left int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top, r.left
}

// Render draws one frame.
func (r *Renderer) Render(src Source, st Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.backend.Size()
	r.backend.Clear()
	if width <= 0 || height <= 0 {
		r.backend.Show()
		return
	}

	textRows := height - 1
	lineCount := src.LineCount()
	cursor := src.Cursor()
	sel := src.Selection()

	gutter := 0
	if r.opts.ShowLineNumbers {
		gutter = len(strconv.Itoa(lineCount)) + 1
	}
	textWidth := max(width-gutter, 1)

	cursorLine := src.LineText(cursor.Row)
	cursorCol := visualColumn(cursorLine, cursor.Column, r.opts.TabWidth)
	r.scrollTo(cursor.Row, cursorCol, textRows, textWidth)

	for y := range textRows {
		row := r.top + y
		if row >= lineCount {
			r.backend.SetCell(0, y, '~', backend.StyleDim)
			continue
		}
		if gutter > 0 {
			r.drawString(0, y, fmt.Sprintf("%*d ", gutter-1, row+1), gutter, backend.StyleDim)
		}
		r.drawLine(y, row, src.LineText(row), sel, gutter, width)
	}

	if textRows > 0 {
		r.backend.ShowCursor(gutter+cursorCol-r.left, cursor.Row-r.top)
	} else {
		r.backend.HideCursor()
	}

	r.drawStatus(height-1, width, cursor, st)
	r.backend.Show()
}

// scrollTo adjusts the offsets so the cursor cell is visible.
func (r *Renderer) scrollTo(row, vcol, rows, cols int) {
	if rows > 0 {
		margin := min(r.opts.ScrollMargin, (rows-1)/2)
		if row < r.top+margin {
			r.top = row - margin
		}
		if row >= r.top+rows-margin {
			r.top = row - rows + margin + 1
		}
		r.top = max(r.top, 0)
	}

	if vcol < r.left {
		r.left = vcol
	}
	if vcol >= r.left+cols {
		r.left = vcol - cols + 1
	}
}

func (r *Renderer) drawLine(y, row int, text string, sel engine.Selection, gutter, width int) {
	vcol := 0
	col := 0
	for _, ch := range text {
		w := runeCells(ch, vcol, r.opts.TabWidth)
		style := backend.StyleDefault
		if sel.Contains(engine.Point{Row: row, Column: col}) {
			style = backend.StyleReverse
		}

		x := gutter + vcol - r.left
		switch {
		case w == 0 || vcol < r.left || x+w > width:
			// zero width, scrolled off or clipped at the right edge
		case ch == '\t':
			for i := range w {
				r.backend.SetCell(x+i, y, ' ', style)
			}
		default:
			r.backend.SetCell(x, y, ch, style)
			for i := 1; i < w; i++ {
				r.backend.SetCell(x+i, y, 0, style)
			}
		}
		vcol += w
		col++
	}

	// A selected line break shows as one highlighted cell past the text.
	if sel.Contains(engine.Point{Row: row, Column: col}) {
		if x := gutter + vcol - r.left; x >= gutter && x < width {
			r.backend.SetCell(x, y, ' ', backend.StyleReverse)
		}
	}
}

func (r *Renderer) drawStatus(y, width int, cursor engine.Point, st Status) {
	name := st.Name
	if name == "" {
		name = "[No Name]"
	}
	left := " " + name
	if st.Modified {
		left += " [+]"
	}
	if st.ReadOnly {
		left += " [RO]"
	}

	right := fmt.Sprintf("Ln %d, Col %d ", cursor.Row+1, cursor.Column+1)
	if st.Message != "" {
		right = st.Message + "  " + right
	}
	right = truncate(right, width)
	left = truncate(left, max(width-stringCells(right)-1, 0))

	for x := range width {
		r.backend.SetCell(x, y, ' ', backend.StyleReverse)
	}
	r.drawString(0, y, left, width, backend.StyleReverse)
	r.drawString(width-stringCells(right), y, right, width, backend.StyleReverse)
}

// drawString draws s from x, stopping at limit.
func (r *Renderer) drawString(x, y int, s string, limit int, style backend.Style) {
	for _, ch := range s {
		w := runeCells(ch, x, r.opts.TabWidth)
		if x+w > limit {
			return
		}
		r.backend.SetCell(x, y, ch, style)
		for i := 1; i < w; i++ {
			r.backend.SetCell(x+i, y, 0, style)
		}
		x += w
	}
}
