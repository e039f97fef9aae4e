// Package app provides the editing session shell for Quill. It wires the
// edit engine to a document on disk, the clipboard, the keymap and the
// terminal, and runs the event loop.
package app

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dshills/quill/internal/clipboard"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/renderer"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/vfs"
)

// Options configures the application.
type Options struct {
	// Path is the file to edit. Empty opens a scratch document.
	Path string

	// Config holds the settings. Defaults to config.Default().
	Config *config.Config

	// ConfigPath is watched for live reload when set.
	ConfigPath string

	// ReadOnly opens the file in read-only mode regardless of Config.
	ReadOnly bool

	// FS is the file system documents live on. Defaults to the OS.
	FS vfs.VFS

	// Clipboard overrides the clipboard chosen by Config.
	Clipboard engine.Clipboard

	// Backend is the terminal. Required by Run.
	Backend backend.Backend

	// Logger receives diagnostics. Defaults to a disabled logger.
	Logger *Logger
}

// Application is one editing session: a document, its engine and the
// terminal it is shown on.
type Application struct {
	mu sync.Mutex

	opts    Options
	cfg     *config.Config
	logger  *Logger
	doc     *Document
	engine  *engine.Engine
	keymap  *key.Keymap
	backend backend.Backend

	renderer *renderer.Renderer
	watcher  *config.Watcher
	reloads  chan *config.Config

	// message is shown in the status line until the next key.
	message string

	// quitArmed is set after a quit was refused for unsaved changes.
	quitArmed bool

	running atomic.Bool
	done    chan struct{}
	stop    sync.Once
}

// New creates an Application and opens its document.
func New(opts Options) (*Application, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.FS == nil {
		opts.FS = vfs.NewOSFS()
	}
	if opts.Logger == nil {
		opts.Logger = NewNullLogger()
	}

	app := &Application{
		opts:    opts,
		cfg:     opts.Config,
		logger:  opts.Logger,
		backend: opts.Backend,
		reloads: make(chan *config.Config, 1),
		done:    make(chan struct{}),
	}
	app.logger.SetLevel(ParseLogLevel(app.cfg.Logging.Level))

	keymap, err := buildKeymap(app.cfg)
	if err != nil {
		return nil, &InitError{Component: "keymap", Err: err}
	}
	app.keymap = keymap

	doc, text, err := OpenDocument(opts.FS, opts.Path)
	if err != nil {
		return nil, err
	}
	app.doc = doc

	engineOpts := []engine.Option{
		engine.WithContent(text),
		engine.WithClipboard(app.clipboard()),
		engine.WithLogger(app.logger.WithComponent("engine")),
	}
	if !doc.IsScratch() {
		engineOpts = append(engineOpts, engine.WithWriter(doc))
	}
	if opts.ReadOnly || app.cfg.Editor.ReadOnly {
		engineOpts = append(engineOpts, engine.WithReadOnly())
	}
	app.engine = engine.New(engineOpts...)

	app.logger.Info("opened %q (%d lines)", opts.Path, app.engine.LineCount())
	return app, nil
}

// clipboard picks the clipboard collaborator. An unavailable system
// clipboard falls back to an in-memory one.
func (app *Application) clipboard() engine.Clipboard {
	if app.opts.Clipboard != nil {
		return app.opts.Clipboard
	}
	cb, err := clipboard.New(app.cfg.Editor.Clipboard)
	if err != nil {
		app.logger.Warn("clipboard: %v; using in-memory clipboard", err)
		if cb == nil {
			cb = clipboard.NewMemory()
		}
	}
	return cb
}

// buildKeymap returns the default keymap with the configured overrides.
func buildKeymap(cfg *config.Config) (*key.Keymap, error) {
	km := key.DefaultKeymap()
	if err := km.Apply(cfg.Keys); err != nil {
		return nil, err
	}
	return km, nil
}

// Engine returns the session's edit engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Document returns the session's document.
func (app *Application) Document() *Document {
	return app.doc
}

// Keymap returns the active keymap.
func (app *Application) Keymap() *key.Keymap {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.keymap
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Message returns the current status line message.
func (app *Application) Message() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.message
}

// Run starts the application main loop.
// Blocks until the user quits, Shutdown is called or the backend closes.
// An Application runs at most once.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	defer app.Shutdown()

	opts := renderer.DefaultOptions()
	opts.TabWidth = app.cfg.Editor.TabWidth
	opts.ShowLineNumbers = app.cfg.Editor.LineNumbers
	app.renderer = renderer.New(app.backend, opts)

	if app.opts.ConfigPath != "" {
		w, err := config.NewWatcher(app.opts.ConfigPath, app.onConfigReload)
		if err != nil {
			app.logger.Warn("config watcher: %v", err)
		} else {
			app.watcher = w
			defer w.Close()
		}
	}

	return app.eventLoop()
}

// Shutdown stops a running event loop.
func (app *Application) Shutdown() {
	app.stop.Do(func() {
		close(app.done)
		if app.backend != nil {
			app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
		}
	})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// eventLoop renders a frame, then waits for input or a config reload.
func (app *Application) eventLoop() error {
	events := make(chan backend.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventClosed {
				return
			}
			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	for {
		app.render()

		select {
		case <-app.done:
			return nil

		case cfg := <-app.reloads:
			app.applyConfig(cfg)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

func (app *Application) render() {
	app.mu.Lock()
	msg := app.message
	app.mu.Unlock()

	app.renderer.Render(app.engine, renderer.Status{
		Name:     app.doc.Name(),
		Modified: app.engine.Modified(),
		ReadOnly: app.engine.IsReadOnly(),
		Message:  msg,
	})
}

// onConfigReload runs on the watcher goroutine; the event loop applies
// the new settings.
func (app *Application) onConfigReload(cfg *config.Config, err error) {
	if err != nil {
		app.logger.Warn("config reload: %v", err)
		app.setMessage("config error: " + err.Error())
		return
	}
	select {
	case app.reloads <- cfg:
	default:
		// A reload is already pending; drop the older one.
		select {
		case <-app.reloads:
		default:
		}
		app.reloads <- cfg
	}
}

// applyConfig switches to the reloaded keymap and log level. Settings that
// shape the open session, such as read-only, apply to the next session.
func (app *Application) applyConfig(cfg *config.Config) {
	km, err := buildKeymap(cfg)
	if err != nil {
		app.logger.Warn("config reload: %v", err)
		app.setMessage("config error: " + err.Error())
		return
	}

	app.mu.Lock()
	app.cfg = cfg
	app.keymap = km
	app.message = "config reloaded"
	app.mu.Unlock()

	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	app.logger.Info("config reloaded")
}

func (app *Application) setMessage(msg string) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.message = msg
}
