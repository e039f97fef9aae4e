package key

import (
	"strings"
	"unicode"
)

// Event represents a single decoded key event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Repeat is set when the event was produced by holding the key down.
	Repeat bool
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character with no command
// modifier. Shift alone does not count, since it changes the character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) &&
		!e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// Press returns the event with Repeat cleared. Keymap lookups use it so a
// repeat resolves exactly like the initial press.
func (e Event) Press() Event {
	e.Repeat = false
	return e
}

// Equals returns true if two events represent the same key press.
// Repeat is not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// String returns a canonical spec that Parse accepts.
// Examples: "a", "Ctrl+S", "Shift+Left", "Ctrl+Space".
func (e Event) String() string {
	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune && e.Modifiers.Has(ModCtrl):
		name = strings.ToUpper(string(e.Rune))
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}

	mods := e.Modifiers
	// Shift is part of a printable character itself.
	if e.Key == KeyRune && e.Rune != ' ' && !mods.Has(ModCtrl|ModAlt|ModMeta) {
		mods = mods.Without(ModShift)
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}
