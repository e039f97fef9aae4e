package app

import (
	"errors"
	"fmt"

	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/renderer/backend"
)

// HandleEvent processes one backend event.
// Returns ErrQuit if the application should exit.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev.Key)
	case backend.EventPaste:
		return app.handlePaste(ev.PasteText)
	default:
		// Resize needs no work: each frame reads the backend size.
		return nil
	}
}

// handleKey resolves a key through the keymap and runs the command.
// Engine failures are reported in the status line, never fatal.
func (app *Application) handleKey(ev key.Event) error {
	km := app.Keymap()

	app.mu.Lock()
	app.message = ""
	armed := app.quitArmed
	app.quitArmed = false
	app.mu.Unlock()

	if action, ok := km.Lookup(ev); ok && action == key.ActionQuit {
		return app.quit(armed)
	}

	cmd, ok := km.Command(ev)
	if !ok {
		return nil
	}

	// Shift+arrow starts a selection at the cursor when none is active.
	if _, ok := cmd.(engine.ExtendSelection); ok && !app.engine.Selection().Active() {
		if err := app.engine.Execute(engine.BeginSelection{}); err != nil {
			return app.report(cmd, err)
		}
	}

	if err := app.engine.Execute(cmd); err != nil {
		return app.report(cmd, err)
	}

	if _, ok := cmd.(engine.Save); ok {
		app.setMessage(fmt.Sprintf("wrote %s", app.doc.Name()))
		app.logger.Info("saved %s", app.doc.Path())
	}
	return nil
}

// quit exits unless the text has unsaved changes. Then the first request
// only warns and a second one in a row exits.
func (app *Application) quit(armed bool) error {
	if !app.engine.Modified() || armed {
		return ErrQuit
	}

	app.mu.Lock()
	app.quitArmed = true
	app.message = "unsaved changes; quit again to discard them"
	app.mu.Unlock()

	app.logger.Debug("quit refused: %v", ErrUnsavedChanges)
	return nil
}

// handlePaste inserts bracketed-paste text at the cursor as one edit.
func (app *Application) handlePaste(text string) error {
	if text == "" {
		return nil
	}
	cmd := engine.Paste{Text: text}
	if err := app.engine.Execute(cmd); err != nil {
		return app.report(cmd, err)
	}
	return nil
}

func (app *Application) report(cmd engine.Command, err error) error {
	app.logger.Warn("%s: %v", cmd.Name(), err)

	msg := err.Error()
	if errors.Is(err, engine.ErrReadOnly) {
		msg = "read-only"
	}
	app.setMessage(msg)
	return nil
}
