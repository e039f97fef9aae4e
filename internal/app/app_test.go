package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/quill/internal/clipboard"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/vfs"
)

type failingClipboard struct{}

func (failingClipboard) ReadText() (string, error) { return "", errors.New("no display") }
func (failingClipboard) WriteText(string) error    { return errors.New("no display") }

func keyEvent(spec string) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: key.MustParse(spec)}
}

func newTestApp(t *testing.T, fsys *vfs.MemFS, opts Options) *Application {
	t.Helper()
	opts.FS = fsys
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewMemory()
	}
	if opts.Backend == nil {
		opts.Backend = backend.NewNullBackend(40, 10)
	}
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return app
}

func send(t *testing.T, app *Application, specs ...string) {
	t.Helper()
	for _, spec := range specs {
		if err := app.HandleEvent(keyEvent(spec)); err != nil {
			t.Fatalf("HandleEvent(%q) failed: %v", spec, err)
		}
	}
}

func TestNewOpensDocument(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/a.txt", "hello\nworld")

	app := newTestApp(t, m, Options{Path: "/a.txt"})

	if got := app.Engine().Text(); got != "hello\nworld" {
		t.Errorf("Text = %q", got)
	}
	if app.Document().Name() != "a.txt" {
		t.Errorf("Name = %q", app.Document().Name())
	}
	if app.Engine().Modified() {
		t.Error("freshly opened document should not be modified")
	}
}

func TestNewErrors(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/bin", "\x00\x01")

	if _, err := New(Options{FS: m, Path: "/bin"}); !errors.Is(err, ErrBinaryFile) {
		t.Errorf("expected ErrBinaryFile, got %v", err)
	}

	cfg := config.Default()
	cfg.Keys["Ctrl+K"] = "explode"
	_, err := New(Options{FS: m, Config: cfg})
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "keymap" {
		t.Errorf("expected keymap InitError, got %v", err)
	}
	if !errors.Is(err, key.ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
}

func TestTypingAndSave(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/a.txt", "x\r\n")
	app := newTestApp(t, m, Options{Path: "/a.txt"})

	send(t, app, "h", "i", "Enter", "Ctrl+S")

	data, _ := m.ReadFile("/a.txt")
	if string(data) != "hi\r\nx\r\n" {
		t.Errorf("saved %q", data)
	}
	if app.Message() != "wrote a.txt" {
		t.Errorf("Message = %q", app.Message())
	}
	if app.Engine().Modified() {
		t.Error("saved document should not be modified")
	}
}

func TestSaveFailureReported(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/a.txt", "keep")
	app := newTestApp(t, m, Options{Path: "/a.txt"})

	m.FailWrites(errors.New("disk full"))
	send(t, app, "z", "Ctrl+S")

	if !strings.Contains(app.Message(), "disk full") {
		t.Errorf("Message = %q, want the write error", app.Message())
	}
	if !app.Engine().Modified() {
		t.Error("failed save should leave the document modified")
	}
	data, _ := m.ReadFile("/a.txt")
	if string(data) != "keep" {
		t.Errorf("file changed to %q", data)
	}
}

func TestScratchSave(t *testing.T) {
	app := newTestApp(t, vfs.NewMemFS(), Options{})
	send(t, app, "a", "Ctrl+S")

	if !strings.Contains(app.Message(), engine.ErrNoWriter.Error()) {
		t.Errorf("Message = %q", app.Message())
	}
}

func TestShiftArrowBeginsSelection(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/a.txt", "hello")
	cb := clipboard.NewMemory()
	app := newTestApp(t, m, Options{Path: "/a.txt", Clipboard: cb})

	send(t, app, "Shift+Right", "Shift+Right")

	if got := app.Engine().SelectionText(); got != "he" {
		t.Fatalf("SelectionText = %q, want %q", got, "he")
	}

	send(t, app, "Ctrl+X")
	if got := app.Engine().Text(); got != "llo" {
		t.Errorf("Text = %q", got)
	}
	if got, _ := cb.ReadText(); got != "he" {
		t.Errorf("clipboard = %q", got)
	}

	send(t, app, "Right", "Right", "Right", "Ctrl+V")
	if got := app.Engine().Text(); got != "llohe" {
		t.Errorf("Text after paste = %q", got)
	}
}

func TestClipboardFailureReported(t *testing.T) {
	app := newTestApp(t, vfs.NewMemFS(), Options{Clipboard: failingClipboard{}})
	send(t, app, "a", "Shift+Left", "Ctrl+X")

	if !strings.Contains(app.Message(), "no display") {
		t.Errorf("Message = %q", app.Message())
	}
	if app.Engine().Text() != "a" {
		t.Errorf("failed cut changed text to %q", app.Engine().Text())
	}
}

func TestQuitWithUnsavedChanges(t *testing.T) {
	app := newTestApp(t, vfs.NewMemFS(), Options{})

	if err := app.HandleEvent(keyEvent("Ctrl+Q")); !errors.Is(err, ErrQuit) {
		t.Fatalf("unmodified quit: expected ErrQuit, got %v", err)
	}

	send(t, app, "a", "Ctrl+Q")
	if !strings.Contains(app.Message(), "unsaved changes") {
		t.Errorf("Message = %q", app.Message())
	}
	if err := app.HandleEvent(keyEvent("Ctrl+Q")); !errors.Is(err, ErrQuit) {
		t.Errorf("second quit: expected ErrQuit, got %v", err)
	}
}

func TestQuitDisarmedByOtherKey(t *testing.T) {
	app := newTestApp(t, vfs.NewMemFS(), Options{})

	send(t, app, "a", "Ctrl+Q", "Left", "Ctrl+Q")
	if !strings.Contains(app.Message(), "unsaved changes") {
		t.Errorf("quit after another key should warn again, Message = %q", app.Message())
	}
}

func TestPasteEvent(t *testing.T) {
	app := newTestApp(t, vfs.NewMemFS(), Options{})

	ev := backend.Event{Type: backend.EventPaste, PasteText: "one\ntwo"}
	if err := app.HandleEvent(ev); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}
	if got := app.Engine().Text(); got != "one\ntwo" {
		t.Errorf("Text = %q", got)
	}

	// The whole paste undoes as one step.
	send(t, app, "Ctrl+Z")
	if got := app.Engine().Text(); got != "" {
		t.Errorf("Text after undo = %q", got)
	}
}

func TestReadOnly(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/a.txt", "fixed")
	app := newTestApp(t, m, Options{Path: "/a.txt", ReadOnly: true})

	send(t, app, "x")
	if app.Message() != "read-only" {
		t.Errorf("Message = %q", app.Message())
	}
	if app.Engine().Text() != "fixed" {
		t.Errorf("Text = %q", app.Engine().Text())
	}

	// Moving still works.
	send(t, app, "Right")
	if app.Engine().Cursor().Column != 1 {
		t.Errorf("Cursor = %v", app.Engine().Cursor())
	}
}

func TestConfigKeyOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Keys["Ctrl+K"] = "undo"
	app := newTestApp(t, vfs.NewMemFS(), Options{Config: cfg})

	send(t, app, "a", "Ctrl+K")
	if got := app.Engine().Text(); got != "" {
		t.Errorf("Ctrl+K should undo, Text = %q", got)
	}
}

func TestApplyConfig(t *testing.T) {
	app := newTestApp(t, vfs.NewMemFS(), Options{})

	cfg := config.Default()
	cfg.Logging.Level = "debug"
	cfg.Keys["Ctrl+B"] = "move-left"
	app.applyConfig(cfg)

	if app.Message() != "config reloaded" {
		t.Errorf("Message = %q", app.Message())
	}
	if app.Logger().Level() != LogLevelDebug {
		t.Errorf("Level = %v", app.Logger().Level())
	}
	if action, ok := app.Keymap().Lookup(key.MustParse("Ctrl+B")); !ok || action != key.ActionMoveLeft {
		t.Errorf("Ctrl+B = %v, %v", action, ok)
	}

	bad := config.Default()
	bad.Keys["Ctrl+B"] = "explode"
	app.applyConfig(bad)
	if !strings.HasPrefix(app.Message(), "config error") {
		t.Errorf("Message = %q", app.Message())
	}
	if action, _ := app.Keymap().Lookup(key.MustParse("Ctrl+B")); action != key.ActionMoveLeft {
		t.Error("a failed reload should keep the previous keymap")
	}
}

func TestOnConfigReloadKeepsNewest(t *testing.T) {
	app := newTestApp(t, vfs.NewMemFS(), Options{})

	first, second := config.Default(), config.Default()
	app.onConfigReload(first, nil)
	app.onConfigReload(second, nil)

	if got := <-app.reloads; got != second {
		t.Error("expected the newest pending config")
	}

	app.onConfigReload(nil, errors.New("bad toml"))
	if !strings.Contains(app.Message(), "bad toml") {
		t.Errorf("Message = %q", app.Message())
	}
}

func runAsync(app *Application) <-chan error {
	done := make(chan error, 1)
	go func() { done <- app.Run() }()
	return done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRun(t *testing.T) {
	m := vfs.NewMemFS()
	_ = m.AddFile("/a.txt", "")
	nb := backend.NewNullBackend(40, 10)
	app := newTestApp(t, m, Options{Path: "/a.txt", Backend: nb})

	for _, spec := range []string{"h", "i", "Ctrl+S", "Ctrl+Q"} {
		nb.PostEvent(keyEvent(spec))
	}

	if err := waitRun(t, runAsync(app)); err != nil {
		t.Fatalf("Run returned %v", err)
	}

	data, _ := m.ReadFile("/a.txt")
	if string(data) != "hi" {
		t.Errorf("saved %q", data)
	}
	if !strings.HasPrefix(nb.Row(0), "hi") {
		t.Errorf("row 0 = %q", nb.Row(0))
	}
	if !strings.Contains(nb.Row(9), "a.txt") {
		t.Errorf("status line = %q", nb.Row(9))
	}
	if app.IsRunning() {
		t.Error("IsRunning after Run returned")
	}
}

func TestRunShutdown(t *testing.T) {
	nb := backend.NewNullBackend(40, 10)
	app := newTestApp(t, vfs.NewMemFS(), Options{Backend: nb})

	done := runAsync(app)
	app.Shutdown()
	app.Shutdown()

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run returned %v", err)
	}
}

func TestRunBackendClosed(t *testing.T) {
	nb := backend.NewNullBackend(40, 10)
	app := newTestApp(t, vfs.NewMemFS(), Options{Backend: nb})

	nb.Shutdown()
	if err := waitRun(t, runAsync(app)); err != nil {
		t.Fatalf("Run returned %v", err)
	}
}

func TestRunNoBackend(t *testing.T) {
	app, err := New(Options{FS: vfs.NewMemFS(), Clipboard: clipboard.NewMemory()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}
