package ui

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

type drawCall struct {
	Pos   Position
	Style Style
	Text  string
}

// mockOut is a FrontendOut recording what the core asks of it.
type mockOut struct {
	screenW, screenH int
	fontW, fontH     int

	screenCalls int
	fontCalls   int
	finished    int
	draws       []drawCall
}

func newMockOut(w, h int) *mockOut {
	return &mockOut{screenW: w, screenH: h, fontW: 8, fontH: 14}
}

func (m *mockOut) ScreenDimension() (int, int) {
	m.screenCalls++
	return m.screenW, m.screenH
}

func (m *mockOut) FontDimension() (int, int) {
	m.fontCalls++
	return m.fontW, m.fontH
}

func (m *mockOut) Draw(pos Position, style Style, text string) {
	m.draws = append(m.draws, drawCall{Pos: pos, Style: style, Text: text})
}

func (m *mockOut) DrawFinish() {
	m.finished++
}

// scriptIn replays a fixed list of events and then reports io.EOF.
type scriptIn struct {
	events []Event
}

func (s *scriptIn) WaitEvent(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.events) == 0 {
		return nil, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

// testTree builds the reference tree: an 800x600 surface, a zero-style
// root, a list with margin 4 and padding 7, and three widgets.
func testTree(t *testing.T, opts ...Option) (*Context, *mockOut, *Container, []*Widget) {
	t.Helper()
	ctx := NewContext(opts...)
	out := newMockOut(800, 600)
	root := NewRoot(ctx, nil, Style{})
	list := NewList(root, Style{Margin: 4, Padding: 7}, 0)
	widgets := []*Widget{
		NewWidget(list, Style{}, "one"),
		NewWidget(list, Style{}, "two"),
		NewWidget(list, Style{}, "three"),
	}
	ctx.SetFrontendOut(out)
	return ctx, out, list, widgets
}

// captureLogs returns a context option and the ring receiving every record
// at debug level and above.
func captureLogs() (Option, *RingHandler) {
	h := NewRingHandler(100, slog.LevelDebug, nil)
	return WithLogger(slog.New(h)), h
}
