package lua

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/buffer"
)

// Editor is the part of the edit engine a script can drive.
// *engine.Engine implements it.
type Editor interface {
	Execute(cmd engine.Command) error
	Text() string
	Cursor() engine.Point
	SelectionText() string
	Modified() bool
}

var _ Editor = (*engine.Engine)(nil)

// Runner runs Lua scripts against an Editor through the global "editor"
// table. Every call into the table runs one engine command.
type Runner struct {
	state  *State
	editor Editor

	// failure is the last engine error raised into the running script and
	// failureMsg the Lua error message it was raised with.
	failure    error
	failureMsg string
}

// NewRunner creates a Runner with its own Lua state.
func NewRunner(ed Editor, opts ...StateOption) (*Runner, error) {
	state, err := NewState(opts...)
	if err != nil {
		return nil, err
	}

	r := &Runner{state: state, editor: ed}
	state.RegisterModule("editor", r.functions())
	return r, nil
}

// RunFile executes the script at path.
func (r *Runner) RunFile(path string) error {
	r.failure, r.failureMsg = nil, ""
	return r.result(path, r.state.DoFile(path))
}

// RunString executes a script held in memory.
func (r *Runner) RunString(code string) error {
	r.failure, r.failureMsg = nil, ""
	return r.result("<string>", r.state.DoString(code))
}

// result prefers the engine error that aborted the script, so callers can
// match it with errors.Is. An engine error the script caught with pcall
// does not stand in for a later, unrelated failure.
func (r *Runner) result(name string, err error) error {
	if err == nil {
		return nil
	}
	if r.failure != nil && strings.Contains(err.Error(), r.failureMsg) {
		return fmt.Errorf("script %s: %w", name, r.failure)
	}
	return fmt.Errorf("script %s: %w", name, err)
}

// Close releases the Lua state.
func (r *Runner) Close() error {
	return r.state.Close()
}

func (r *Runner) functions() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"insert":    r.insert,
		"newline":   r.command(engine.NewLine{}),
		"backspace": r.repeat(engine.DeleteBackward{}),
		"move":      r.direction(func(d buffer.Direction) engine.Command { return engine.MoveCursor{Dir: d} }),
		"select":    r.command(engine.BeginSelection{}),
		"extend":    r.direction(func(d buffer.Direction) engine.Command { return engine.ExtendSelection{Dir: d} }),
		"clear":     r.command(engine.ClearSelection{}),
		"cut":       r.command(engine.Cut{}),
		"copy":      r.command(engine.Copy{}),
		"paste":     r.paste,
		"undo":      r.repeat(engine.Undo{}),
		"redo":      r.repeat(engine.Redo{}),
		"save":      r.command(engine.Save{}),
		"text":      r.text,
		"selection": r.selection,
		"cursor":    r.cursor,
		"modified":  r.modified,
	}
}

// exec runs cmd and raises a Lua error when the engine rejects it. It stops
// the script once the execution deadline has passed, since repeat counts
// can keep a single call busy in Go without returning to the VM.
func (r *Runner) exec(L *lua.LState, cmd engine.Command) {
	if ctx := L.Context(); ctx != nil && ctx.Err() != nil {
		L.RaiseError("%v", ctx.Err())
	}
	if err := r.editor.Execute(cmd); err != nil {
		r.failure = err
		r.failureMsg = fmt.Sprintf("%s: %v", cmd.Name(), err)
		L.RaiseError("%s", r.failureMsg)
	}
}

func (r *Runner) command(cmd engine.Command) lua.LGFunction {
	return func(L *lua.LState) int {
		r.exec(L, cmd)
		return 0
	}
}

// repeat runs cmd n times, where n is the optional first argument.
func (r *Runner) repeat(cmd engine.Command) lua.LGFunction {
	return func(L *lua.LState) int {
		for range count(L, 1) {
			r.exec(L, cmd)
		}
		return 0
	}
}

// direction builds a command from a direction name and an optional count,
// as in editor.move("down", 3).
func (r *Runner) direction(build func(buffer.Direction) engine.Command) lua.LGFunction {
	return func(L *lua.LState) int {
		name := L.CheckString(1)
		dir, ok := buffer.ParseDirection(name)
		if !ok {
			L.ArgError(1, fmt.Sprintf("unknown direction %q", name))
			return 0
		}
		cmd := build(dir)
		for range count(L, 2) {
			r.exec(L, cmd)
		}
		return 0
	}
}

// insert types its argument one character at a time. Line endings are
// normalized first so "\r\n" types a single line break.
func (r *Runner) insert(L *lua.LState) int {
	text := strings.Join(buffer.SplitLines(L.CheckString(1)), "\n")
	for _, ch := range text {
		r.exec(L, engine.InsertChar{Char: ch})
	}
	return 0
}

// paste inserts its argument as one edit, or the clipboard when called
// without one.
func (r *Runner) paste(L *lua.LState) int {
	if L.GetTop() >= 1 {
		r.exec(L, engine.Paste{Text: L.CheckString(1)})
		return 0
	}
	r.exec(L, engine.PasteClipboard{})
	return 0
}

func (r *Runner) text(L *lua.LState) int {
	L.Push(lua.LString(r.editor.Text()))
	return 1
}

// selection returns the selected text, or nil without a selection.
func (r *Runner) selection(L *lua.LState) int {
	text := r.editor.SelectionText()
	if text == "" {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(text))
	return 1
}

// cursor returns the 1-based line and column, as Lua counts.
func (r *Runner) cursor(L *lua.LState) int {
	p := r.editor.Cursor()
	L.Push(lua.LNumber(p.Row + 1))
	L.Push(lua.LNumber(p.Column + 1))
	return 2
}

func (r *Runner) modified(L *lua.LState) int {
	L.Push(lua.LBool(r.editor.Modified()))
	return 1
}

// count reads an optional repeat count at position n.
func count(L *lua.LState, n int) int {
	c := L.OptInt(n, 1)
	if c < 0 {
		L.ArgError(n, "count must not be negative")
	}
	return c
}
