package engine

// Clipboard is the clipboard collaborator. The engine never touches the
// system clipboard directly; it reads and writes plain text through this
// interface.
type Clipboard interface {
	// ReadText returns the clipboard contents.
	ReadText() (string, error)

	// WriteText replaces the clipboard contents.
	WriteText(text string) error
}

// FileWriter is the file-write collaborator. WriteText must persist text
// verbatim and either complete or fail before returning.
type FileWriter interface {
	WriteText(text string) error
}

// Logger receives engine diagnostics. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
