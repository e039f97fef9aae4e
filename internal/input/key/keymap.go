package key

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dshills/quill/internal/engine"
)

// Action names an editor action a key can be bound to.
type Action string

// Actions understood by the editor.
const (
	ActionCut            Action = "cut"
	ActionCopy           Action = "copy"
	ActionPaste          Action = "paste"
	ActionSave           Action = "save"
	ActionUndo           Action = "undo"
	ActionRedo           Action = "redo"
	ActionNewline        Action = "newline"
	ActionDeleteBackward Action = "delete-backward"
	ActionMoveUp         Action = "move-up"
	ActionMoveDown       Action = "move-down"
	ActionMoveLeft       Action = "move-left"
	ActionMoveRight      Action = "move-right"
	ActionSelectBegin    Action = "select"
	ActionExtendUp       Action = "extend-up"
	ActionExtendDown     Action = "extend-down"
	ActionExtendLeft     Action = "extend-left"
	ActionExtendRight    Action = "extend-right"
	ActionClearSelection Action = "clear-selection"
	ActionCommit         Action = "commit"

	// ActionQuit leaves the editor. It has no engine command.
	ActionQuit Action = "quit"
)

// ErrUnknownAction indicates a binding to an action that does not exist.
var ErrUnknownAction = errors.New("unknown action")

var actionCommands = map[Action]engine.Command{
	ActionCut:            engine.Cut{},
	ActionCopy:           engine.Copy{},
	ActionPaste:          engine.PasteClipboard{},
	ActionSave:           engine.Save{},
	ActionUndo:           engine.Undo{},
	ActionRedo:           engine.Redo{},
	ActionNewline:        engine.NewLine{},
	ActionDeleteBackward: engine.DeleteBackward{},
	ActionMoveUp:         engine.MoveCursor{Dir: engine.Up},
	ActionMoveDown:       engine.MoveCursor{Dir: engine.Down},
	ActionMoveLeft:       engine.MoveCursor{Dir: engine.Left},
	ActionMoveRight:      engine.MoveCursor{Dir: engine.Right},
	ActionSelectBegin:    engine.BeginSelection{},
	ActionExtendUp:       engine.ExtendSelection{Dir: engine.Up},
	ActionExtendDown:     engine.ExtendSelection{Dir: engine.Down},
	ActionExtendLeft:     engine.ExtendSelection{Dir: engine.Left},
	ActionExtendRight:    engine.ExtendSelection{Dir: engine.Right},
	ActionClearSelection: engine.ClearSelection{},
	ActionCommit:         engine.Commit{},
}

// Command returns the engine command for the action.
// Returns false for actions handled outside the engine, such as quit.
func (a Action) Command() (engine.Command, bool) {
	cmd, ok := actionCommands[a]
	return cmd, ok
}

// Valid returns true if the action is known.
func (a Action) Valid() bool {
	_, ok := actionCommands[a]
	return ok || a == ActionQuit
}

// DefaultBindings maps key specs to actions.
var DefaultBindings = map[string]Action{
	"Ctrl+X":      ActionCut,
	"Ctrl+C":      ActionCopy,
	"Ctrl+V":      ActionPaste,
	"Ctrl+S":      ActionSave,
	"Ctrl+Z":      ActionUndo,
	"Ctrl+Y":      ActionRedo,
	"Ctrl+Q":      ActionQuit,
	"Enter":       ActionNewline,
	"Backspace":   ActionDeleteBackward,
	"Delete":      ActionDeleteBackward,
	"Up":          ActionMoveUp,
	"Down":        ActionMoveDown,
	"Left":        ActionMoveLeft,
	"Right":       ActionMoveRight,
	"Ctrl+Space":  ActionSelectBegin,
	"Shift+Up":    ActionExtendUp,
	"Shift+Down":  ActionExtendDown,
	"Shift+Left":  ActionExtendLeft,
	"Shift+Right": ActionExtendRight,
	"Esc":         ActionClearSelection,
}

// binding is the lookup key for an event; Repeat never takes part.
type binding struct {
	key  Key
	r    rune
	mods Modifier
}

func bindingOf(ev Event) binding {
	return binding{key: ev.Key, r: ev.Rune, mods: ev.Modifiers}
}

// Keymap maps key events to actions. It is safe for concurrent use, so a
// config reload can rebind keys while the editor reads them.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[binding]Action
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[binding]Action)}
}

// DefaultKeymap creates a keymap with DefaultBindings.
func DefaultKeymap() *Keymap {
	km := NewKeymap()
	for spec, action := range DefaultBindings {
		km.bindings[bindingOf(MustParse(spec))] = action
	}
	return km
}

// Bind binds the key spec to action, replacing any existing binding.
func (km *Keymap) Bind(spec string, action Action) error {
	ev, err := Parse(spec)
	if err != nil {
		return err
	}
	if !action.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	km.bindings[bindingOf(ev)] = action
	return nil
}

// Unbind removes the binding for the key spec.
func (km *Keymap) Unbind(spec string) error {
	ev, err := Parse(spec)
	if err != nil {
		return err
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	delete(km.bindings, bindingOf(ev))
	return nil
}

// Apply binds every spec in overrides. All bindings are validated before
// any is applied, so an invalid entry leaves the keymap unchanged.
func (km *Keymap) Apply(overrides map[string]string) error {
	parsed := make(map[binding]Action, len(overrides))
	var errs []error
	for _, spec := range slices.Sorted(maps.Keys(overrides)) {
		action := Action(overrides[spec])
		ev, err := Parse(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !action.Valid() {
			errs = append(errs, fmt.Errorf("%w: %q bound to %q", ErrUnknownAction, action, spec))
			continue
		}
		parsed[bindingOf(ev)] = action
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	maps.Copy(km.bindings, parsed)
	return nil
}

// Lookup returns the action bound to the event.
func (km *Keymap) Lookup(ev Event) (Action, bool) {
	km.mu.RLock()
	defer km.mu.RUnlock()
	action, ok := km.bindings[bindingOf(ev.Press())]
	return action, ok
}

// Command resolves an event to an engine command. Bound keys resolve
// through their action; unbound printable characters and Tab insert
// themselves. Returns false for unbound keys and for actions without an
// engine command.
func (km *Keymap) Command(ev Event) (engine.Command, bool) {
	if action, ok := km.Lookup(ev); ok {
		return action.Command()
	}

	switch {
	case ev.IsChar():
		return engine.InsertChar{Char: ev.Rune}, true
	case ev.Key == KeyTab && ev.Modifiers == ModNone:
		return engine.InsertChar{Char: '\t'}, true
	}
	return nil, false
}

// Len returns the number of bindings.
func (km *Keymap) Len() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.bindings)
}
