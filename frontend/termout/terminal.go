// Package termout is a curses-style terminal backend built on tcell.
// One terminal cell is one layout unit.
package termout

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/OpticalFlyer/spox/ui"
)

const facility = "CURSES_OUT"

var (
	_ ui.FrontendOut = (*Terminal)(nil)
	_ ui.FrontendIn  = (*Terminal)(nil)
)

// Terminal draws components on a tcell screen and reads its events.
type Terminal struct {
	screen tcell.Screen
	logger *slog.Logger

	textStyle  tcell.Style
	frameStyle tcell.Style

	pumpOnce  sync.Once
	events    chan tcell.Event
	done      chan struct{}
	closeOnce sync.Once

	// Mouse state, to turn motion reports into press and release edges.
	buttonDown bool
}

// New initializes the terminal and enables mouse reporting.
func New(logger *slog.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return NewWithScreen(screen, logger), nil
}

// NewWithScreen wraps an initialized screen.
func NewWithScreen(screen tcell.Screen, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Terminal{
		screen:     screen,
		logger:     logger.With(ui.FacilityKey, facility),
		textStyle:  tcell.StyleDefault,
		frameStyle: tcell.StyleDefault.Foreground(tcell.ColorGray),
		done:       make(chan struct{}),
	}
}

// Close restores the terminal and stops the event pump. It is safe to
// call more than once.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
		t.screen.Fini()
	})
}

func (t *Terminal) ScreenDimension() (int, int) {
	return t.screen.Size()
}

func (t *Terminal) FontDimension() (int, int) {
	return 1, 1
}

// Draw frames boxes that have room for a border and writes the text on the
// content row, clipped to the box and padded with blanks to its right edge.
func (t *Terminal) Draw(pos ui.Position, style ui.Style, text string) {
	if style.Margin+style.Padding > 0 && pos.W >= 2 && pos.H >= 2 {
		t.frame(pos)
	}

	right := pos.X + pos.W
	if pos.TextX >= right {
		return
	}
	text = runewidth.Truncate(text, right-pos.TextX, "")
	x := pos.TextX
	for _, r := range text {
		t.screen.SetContent(x, pos.TextY, r, nil, t.textStyle)
		x += runewidth.RuneWidth(r)
	}
	for ; x < right; x++ {
		t.screen.SetContent(x, pos.TextY, ' ', nil, t.textStyle)
	}
}

func (t *Terminal) frame(pos ui.Position) {
	x0, y0 := pos.X, pos.Y
	x1, y1 := pos.X+pos.W-1, pos.Y+pos.H-1
	for x := x0 + 1; x < x1; x++ {
		t.screen.SetContent(x, y0, tcell.RuneHLine, nil, t.frameStyle)
		t.screen.SetContent(x, y1, tcell.RuneHLine, nil, t.frameStyle)
	}
	for y := y0 + 1; y < y1; y++ {
		t.screen.SetContent(x0, y, tcell.RuneVLine, nil, t.frameStyle)
		t.screen.SetContent(x1, y, tcell.RuneVLine, nil, t.frameStyle)
	}
	t.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, t.frameStyle)
	t.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, t.frameStyle)
	t.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, t.frameStyle)
	t.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, t.frameStyle)
}

// DrawFinish shows the frame and starts the next one on a blank buffer.
func (t *Terminal) DrawFinish() {
	t.screen.Show()
	t.screen.Clear()
}

// WaitEvent blocks until the next event the toolkit understands. It
// returns io.EOF once the terminal is closed.
func (t *Terminal) WaitEvent(ctx context.Context) (ui.Event, error) {
	t.pumpOnce.Do(t.startPump)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.done:
			return nil, io.EOF
		case ev, ok := <-t.events:
			if !ok {
				return nil, io.EOF
			}
			if uev := t.translate(ev); uev != nil {
				return uev, nil
			}
		}
	}
}

// startPump moves tcell events onto a channel so that waiting can be
// cancelled. The pump ends when the screen is finalized or Close is
// called, even if nobody reads the channel any more.
func (t *Terminal) startPump() {
	t.events = make(chan tcell.Event, 16)
	go func() {
		defer close(t.events)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case t.events <- ev:
			case <-t.done:
				return
			}
		}
	}()
}

var keys = map[tcell.Key]ui.Key{
	tcell.KeyEnter:      ui.KeyEnter,
	tcell.KeyEscape:     ui.KeyEscape,
	tcell.KeyBackspace:  ui.KeyBackspace,
	tcell.KeyBackspace2: ui.KeyBackspace,
	tcell.KeyTab:        ui.KeyTab,
	tcell.KeyUp:         ui.KeyUp,
	tcell.KeyDown:       ui.KeyDown,
	tcell.KeyLeft:       ui.KeyLeft,
	tcell.KeyRight:      ui.KeyRight,
}

// translate maps a tcell event to a toolkit event, or nil for events the
// toolkit ignores.
func (t *Terminal) translate(ev tcell.Event) ui.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyRune:
			return ui.KeyEvent{Key: ui.KeyRune, Rune: ev.Rune()}
		case tcell.KeyCtrlC:
			return ui.QuitEvent{}
		}
		if k, ok := keys[ev.Key()]; ok {
			return ui.KeyEvent{Key: k}
		}
		t.logger.Debug("unmapped key", ui.OpKey, "translate", "key", ev.Name())
		return nil
	case *tcell.EventResize:
		t.screen.Sync()
		w, h := ev.Size()
		return ui.ResizeEvent{W: w, H: h}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down == t.buttonDown {
			return nil
		}
		t.buttonDown = down
		x, y := ev.Position()
		return ui.ClickEvent{X: x, Y: y, Pressed: down}
	}
	return nil
}
