package drawout

import (
	"image"
	"testing"
	"unicode/utf8"

	"9fans.net/go/draw"
	"github.com/google/go-cmp/cmp"

	"github.com/OpticalFlyer/spox/ui"
)

func TestTranslateRune(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want ui.Event
	}{
		{name: "Letter", r: 'a', want: ui.KeyEvent{Key: ui.KeyRune, Rune: 'a'}},
		{name: "Non-ASCII", r: 'é', want: ui.KeyEvent{Key: ui.KeyRune, Rune: 'é'}},
		{name: "Newline", r: '\n', want: ui.KeyEvent{Key: ui.KeyEnter}},
		{name: "Tab", r: '\t', want: ui.KeyEvent{Key: ui.KeyTab}},
		{name: "Escape", r: 0x1b, want: ui.KeyEvent{Key: ui.KeyEscape}},
		{name: "Delete", r: 0x7f, want: ui.KeyEvent{Key: ui.KeyBackspace}},
		{name: "Interrupt", r: 0x03, want: ui.QuitEvent{}},
		{name: "Up", r: draw.KeyUp, want: ui.KeyEvent{Key: ui.KeyUp}},
		{name: "Down", r: draw.KeyDown, want: ui.KeyEvent{Key: ui.KeyDown}},
		{name: "Other control", r: 0x01, want: nil},
		{name: "Function key", r: draw.KeyHome, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, translateRune(tt.r)); diff != "" {
				t.Errorf("translateRune(%U) mismatch (-want +got):\n%s", tt.r, diff)
			}
		})
	}
}

func TestPointerEdges(t *testing.T) {
	var p pointer
	reports := []struct {
		x, y    int
		buttons int
		want    ui.Event
	}{
		{x: 1, y: 1, buttons: 0, want: nil},
		{x: 2, y: 3, buttons: 1, want: ui.ClickEvent{X: 2, Y: 3, Pressed: true}},
		{x: 4, y: 3, buttons: 1, want: nil},
		{x: 4, y: 3, buttons: 5, want: nil},
		{x: 5, y: 6, buttons: 4, want: ui.ClickEvent{X: 5, Y: 6}},
	}

	for i, r := range reports {
		got := p.event(draw.Mouse{Point: image.Pt(r.x, r.y), Buttons: r.buttons})
		if diff := cmp.Diff(r.want, got); diff != "" {
			t.Errorf("report %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestClipText(t *testing.T) {
	// Seven pixels per rune.
	measure := func(s string) int { return 7 * utf8.RuneCountInString(s) }

	tests := []struct {
		text  string
		width int
		want  string
	}{
		{text: "button", width: 100, want: "button"},
		{text: "button", width: 42, want: "button"},
		{text: "button", width: 41, want: "butto"},
		{text: "button", width: 6, want: ""},
		{text: "button", width: -3, want: ""},
		{text: "größe", width: 21, want: "grö"},
	}

	for _, tt := range tests {
		if got := clipText(tt.text, tt.width, measure); got != tt.want {
			t.Errorf("clipText(%q, %d) = %q; want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
