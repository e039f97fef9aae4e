// Package clipboard provides the clipboard collaborators used by the edit
// engine: System, backed by the host clipboard, and Memory, an in-process
// clipboard used in tests, headless sessions and on hosts without
// clipboard support.
package clipboard
