package ui

import "context"

// FrontendOut is the drawing side of a backend.
// ScreenDimension and FontDimension must be free of side effects; the layout
// pass may call them at any time.
type FrontendOut interface {
	// ScreenDimension returns the size of the whole render surface.
	ScreenDimension() (width, height int)
	// FontDimension returns the fixed glyph cell size.
	FontDimension() (width, height int)
	// Draw renders one component box and its text.
	Draw(pos Position, style Style, text string)
	// DrawFinish presents the frame.
	DrawFinish()
}

// FrontendIn is the event side of a backend.
type FrontendIn interface {
	// WaitEvent blocks until the next event. It returns io.EOF once the
	// source is closed.
	WaitEvent(ctx context.Context) (Event, error)
}

// Event is an input delivered by a backend.
type Event interface {
	isEvent()
}

// Key identifies a non-printable key. Printable input uses KeyRune.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// KeyEvent is a key press.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// ClickEvent is a pointer button press or release at X, Y in surface units.
type ClickEvent struct {
	X, Y    int
	Pressed bool
}

// ResizeEvent reports a new surface size.
type ResizeEvent struct {
	W, H int
}

// QuitEvent asks the loop to stop.
type QuitEvent struct{}

func (KeyEvent) isEvent()    {}
func (ClickEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}
func (QuitEvent) isEvent()   {}
