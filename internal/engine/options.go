package engine

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithClipboard sets the clipboard collaborator.
func WithClipboard(c Clipboard) Option {
	return func(e *Engine) {
		e.clipboard = c
	}
}

// WithWriter sets the file writer collaborator used by Save.
func WithWriter(w FileWriter) Option {
	return func(e *Engine) {
		e.writer = w
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithReadOnly creates a read-only engine.
// Text-mutating commands and Save will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
