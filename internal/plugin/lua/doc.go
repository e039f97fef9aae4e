// Package lua runs Lua scripts against the edit engine.
//
// A script sees a global table named editor. Each function runs one engine
// command, so a script replays the same edits a user would type:
//
//	editor.insert("hello")
//	editor.newline()
//	editor.move("up")
//	editor.select()
//	editor.extend("right", 5)
//	editor.cut()
//	editor.save()
//	print(editor.text())
//
// move, extend, backspace, undo and redo take an optional repeat count.
// paste inserts its argument, or the clipboard when called without one.
// cursor returns the 1-based line and column.
//
// An engine error, such as a save failing, aborts the script and is
// returned by Runner.RunFile wrapped so errors.Is matches it.
//
// # State
//
// Scripts run in a State with only the base, table, string and math
// libraries. io, os, debug and package are not opened and the loaders
// (dofile, loadfile, load) are removed. Each run is bounded by a timeout:
//
//	r, err := lua.NewRunner(eng, lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	if err := r.RunFile("edits.lua"); err != nil {
//	    return err
//	}
package lua
