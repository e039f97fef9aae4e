// Package renderer draws an editing session on a terminal backend.
//
// Each frame shows the visible lines of the buffer, highlights the active
// selection in reverse video, places the terminal cursor on the buffer
// cursor and finishes with a status line.
//
// Column positions in the buffer count runes. On screen a rune may take
// zero, one or two cells and a tab expands to the next tab stop, so every
// line is laid out cell by cell before drawing.
//
// Usage:
//
//	be, _ := backend.NewTerminal()
//	be.Init()
//	r := renderer.New(be, renderer.DefaultOptions())
//	r.Render(engine, renderer.Status{Name: "notes.txt"})
package renderer
