package ebitenout

import (
	"image"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/OpticalFlyer/spox/ui"
)

var keys = []struct {
	from ebiten.Key
	to   ui.Key
}{
	{ebiten.KeyEnter, ui.KeyEnter},
	{ebiten.KeyNumpadEnter, ui.KeyEnter},
	{ebiten.KeyEscape, ui.KeyEscape},
	{ebiten.KeyBackspace, ui.KeyBackspace},
	{ebiten.KeyTab, ui.KeyTab},
	{ebiten.KeyUp, ui.KeyUp},
	{ebiten.KeyDown, ui.KeyDown},
	{ebiten.KeyLeft, ui.KeyLeft},
	{ebiten.KeyRight, ui.KeyRight},
}

// pollInput collects the input of the current tick as toolkit events:
// keys, typed characters, the left mouse button and touches.
func (w *Window) pollInput() []ui.Event {
	var events []ui.Event

	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.from) {
			events = append(events, ui.KeyEvent{Key: k.to})
		}
	}
	w.chars = ebiten.AppendInputChars(w.chars[:0])
	for _, r := range w.chars {
		events = append(events, ui.KeyEvent{Key: ui.KeyRune, Rune: r})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		events = append(events, ui.ClickEvent{X: x, Y: y, Pressed: true})
	} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		events = append(events, ui.ClickEvent{X: x, Y: y})
	}

	w.touchIDs = ebiten.AppendTouchIDs(w.touchIDs[:0])
	events = append(events, w.touchEvents(w.touchIDs, ebiten.TouchPosition)...)
	return events
}

// touchEvents turns the set of active touches into clicks: a new touch
// presses at its position, an ended touch releases where it was last seen.
func (w *Window) touchEvents(active []ebiten.TouchID, position func(ebiten.TouchID) (int, int)) []ui.Event {
	if w.touches == nil {
		w.touches = make(map[ebiten.TouchID]image.Point)
	}

	var events []ui.Event
	for _, id := range active {
		x, y := position(id)
		if _, exists := w.touches[id]; !exists {
			events = append(events, ui.ClickEvent{X: x, Y: y, Pressed: true})
		}
		w.touches[id] = image.Pt(x, y)
	}

	// Ended touches, in a stable order.
	var ended []ebiten.TouchID
	for id := range w.touches {
		if !containsTouchID(active, id) {
			ended = append(ended, id)
		}
	}
	slices.Sort(ended)
	for _, id := range ended {
		p := w.touches[id]
		events = append(events, ui.ClickEvent{X: p.X, Y: p.Y})
		delete(w.touches, id)
	}
	return events
}

func containsTouchID(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, tid := range ids {
		if tid == id {
			return true
		}
	}
	return false
}
