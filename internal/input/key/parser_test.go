package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"A", NewRuneEvent('A', ModShift)},
		{"@", NewRuneEvent('@', ModNone)},
		{"+", NewRuneEvent('+', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"Esc", NewSpecialEvent(KeyEscape, ModNone)},
		{"Backspace", NewSpecialEvent(KeyBackspace, ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"Ctrl+S", NewRuneEvent('s', ModCtrl)},
		{"ctrl+s", NewRuneEvent('s', ModCtrl)},
		{"Ctrl+Space", NewRuneEvent(' ', ModCtrl)},
		{"Ctrl++", NewRuneEvent('+', ModCtrl)},
		{"Shift+Left", NewSpecialEvent(KeyLeft, ModShift)},
		{"Ctrl+Shift+Right", NewSpecialEvent(KeyRight, ModCtrl|ModShift)},
		{"<C-x>", NewRuneEvent('x', ModCtrl)},
		{"<S-Left>", NewSpecialEvent(KeyLeft, ModShift)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if !got.Equals(tt.want) {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+S", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"NotAKey", ErrInvalidSpec},
		{"<Q-x>", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := Parse(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestEventStringRoundTrip(t *testing.T) {
	events := []Event{
		NewRuneEvent('a', ModNone),
		NewRuneEvent('A', ModShift),
		NewRuneEvent(' ', ModNone),
		NewRuneEvent(' ', ModCtrl),
		NewRuneEvent('s', ModCtrl),
		NewRuneEvent('+', ModCtrl),
		NewSpecialEvent(KeyEnter, ModNone),
		NewSpecialEvent(KeyLeft, ModShift),
		NewSpecialEvent(KeyRight, ModCtrl|ModShift),
	}

	for _, ev := range events {
		spec := ev.String()
		got, err := Parse(spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", spec, err)
			continue
		}
		if !got.Equals(ev) {
			t.Errorf("round trip of %+v via %q gave %+v", ev, spec, got)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("Bogus+Key")
}

func TestEventIsChar(t *testing.T) {
	tests := []struct {
		event Event
		want  bool
	}{
		{NewRuneEvent('a', ModNone), true},
		{NewRuneEvent('A', ModShift), true},
		{NewRuneEvent(' ', ModNone), true},
		{NewRuneEvent('a', ModCtrl), false},
		{NewRuneEvent('\n', ModNone), false},
		{NewSpecialEvent(KeyEscape, ModNone), false},
		{Event{Key: KeyRune}, false},
	}

	for _, tt := range tests {
		if got := tt.event.IsChar(); got != tt.want {
			t.Errorf("IsChar() = %v, want %v for %+v", got, tt.want, tt.event)
		}
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModCtrl | ModAlt | ModShift | ModMeta, "Ctrl+Alt+Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}
