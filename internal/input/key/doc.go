// Package key decodes keyboard input into editing commands.
//
// It defines the key event types delivered by the terminal backend, a parser
// for key specifications used in configuration, and the Keymap that resolves
// an event to an action and from there to an engine command.
//
// # Key Specifications
//
// Key specifications can be written in two formats:
//
//   - With modifiers: "Ctrl+S", "Shift+Left", "ctrl+space"
//   - Bracketed: "<C-s>", "<S-Left>", "<CR>", "<Esc>"
//
// Plain names such as "Enter", "Backspace" or a single character are
// accepted too.
//
// # Key Repeat
//
// A held key arrives as a press followed by repeat events. Both resolve to
// the same command, so holding a key repeats its edit.
package key
