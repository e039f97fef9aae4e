package clipboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// Kinds accepted by New.
const (
	KindSystem = "system"
	KindMemory = "memory"
)

// ErrUnsupported indicates the host has no usable system clipboard.
var ErrUnsupported = errors.New("system clipboard unsupported")

// ErrUnknownKind indicates an unrecognized clipboard kind.
var ErrUnknownKind = errors.New("unknown clipboard kind")

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// New returns the clipboard for kind. An empty kind selects the system
// clipboard. When the system clipboard is unsupported, New falls back to
// a Memory clipboard and reports ErrUnsupported alongside it.
func New(kind string) (Clipboard, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindSystem:
		if clipboard.Unsupported {
			return NewMemory(), ErrUnsupported
		}
		return System{}, nil
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// System is the host clipboard.
type System struct{}

// ReadText returns the host clipboard contents.
func (System) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

// WriteText replaces the host clipboard contents.
func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard. It is safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory creates an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadText returns the stored text.
func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteText stores text.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}
