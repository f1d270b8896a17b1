// Package drawout draws a component tree in a devdraw window through
// 9fans.net/go/draw. Layout units are pixels and the font cell is the
// display font's height and the width of its "m".
package drawout

import (
	"context"
	"image"
	"log/slog"

	"9fans.net/go/draw"

	"github.com/OpticalFlyer/spox/ui"
)

const facility = "XCB_OUT"

var (
	_ ui.FrontendOut = (*Display)(nil)
	_ ui.FrontendIn  = (*Display)(nil)
)

// Display is a devdraw window.
type Display struct {
	d      *draw.Display
	errch  chan error
	mouse  *draw.Mousectl
	keys   *draw.Keyboardctl
	logger *slog.Logger

	font  *draw.Font
	back  *draw.Image
	frame *draw.Image
	text  *draw.Image

	pointer pointer
}

// DefaultFont is the plan9port font used when none is configured.
const DefaultFont = "/lib/font/bit/lucm/unicode.9.font"

// Open connects to devdraw and creates a window of the given size, for
// example "800x600". An empty fontname selects DefaultFont.
func Open(fontname, label, winsize string, logger *slog.Logger) (*Display, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if fontname == "" {
		fontname = DefaultFont
	}
	errch := make(chan error, 1)
	d, err := draw.Init(errch, fontname, label, winsize)
	if err != nil {
		return nil, err
	}
	if err := d.Attach(draw.Refnone); err != nil {
		d.Close()
		return nil, err
	}
	font, err := d.OpenFont(fontname)
	if err != nil {
		d.Close()
		return nil, err
	}
	frame, err := d.AllocImage(image.Rect(0, 0, 1, 1), d.ScreenImage.Pix, true, draw.Palegreygreen)
	if err != nil {
		d.Close()
		return nil, err
	}

	return &Display{
		d:      d,
		errch:  errch,
		mouse:  d.InitMouse(),
		keys:   d.InitKeyboard(),
		logger: logger.With(ui.FacilityKey, facility),
		font:   font,
		back:   d.White,
		frame:  frame,
		text:   d.Black,
	}, nil
}

// Close shuts the window.
func (x *Display) Close() error {
	return x.d.Close()
}

func (x *Display) ScreenDimension() (int, int) {
	r := x.d.ScreenImage.R
	return r.Dx(), r.Dy()
}

func (x *Display) FontDimension() (int, int) {
	return x.font.StringWidth("m"), x.font.Height
}

// Draw outlines boxes with a margin or padding and writes text at the
// content origin, cut to the box width.
func (x *Display) Draw(pos ui.Position, style ui.Style, text string) {
	screen := x.d.ScreenImage
	origin := screen.R.Min
	r := pos.Rect().Add(origin)

	if style.Margin+style.Padding > 0 {
		screen.Border(r, 1, x.frame, image.Point{})
	}
	if text == "" {
		return
	}

	text = clipText(text, pos.X+pos.W-pos.TextX, x.font.StringWidth)
	if text == "" {
		return
	}
	screen.String(image.Pt(pos.TextX, pos.TextY).Add(origin), x.text, image.Point{}, x.font, text)
}

// clipText drops trailing runes until text is at most width wide.
func clipText(text string, width int, measure func(string) int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(text)
	for len(runes) > 0 && measure(string(runes)) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

// DrawFinish flushes the frame and clears the screen for the next one.
func (x *Display) DrawFinish() {
	if err := x.d.Flush(); err != nil {
		x.logger.Warn("flush failed", ui.OpKey, "DrawFinish", "err", err)
	}
	screen := x.d.ScreenImage
	screen.Draw(screen.R, x.back, nil, image.Point{})
}

// WaitEvent blocks until the next mouse, keyboard or resize event the
// toolkit understands.
func (x *Display) WaitEvent(ctx context.Context) (ui.Event, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err := <-x.errch:
			return nil, err
		case <-x.mouse.Resize:
			if err := x.d.Attach(draw.Refnone); err != nil {
				return nil, err
			}
			w, h := x.ScreenDimension()
			return ui.ResizeEvent{W: w, H: h}, nil
		case m := <-x.mouse.C:
			m.Point = m.Point.Sub(x.d.ScreenImage.R.Min)
			if ev := x.pointer.event(m); ev != nil {
				return ev, nil
			}
		case r := <-x.keys.C:
			if ev := translateRune(r); ev != nil {
				return ev, nil
			}
			x.logger.Debug("unmapped key", ui.OpKey, "WaitEvent", "rune", r)
		}
	}
}

// pointer turns mouse reports into press and release edges of button 1.
type pointer struct {
	down bool
}

func (p *pointer) event(m draw.Mouse) ui.Event {
	down := m.Buttons&1 != 0
	if down == p.down {
		return nil
	}
	p.down = down
	return ui.ClickEvent{X: m.X, Y: m.Y, Pressed: down}
}

const (
	ctrlC     = 0x03
	backspace = 0x08
	escape    = 0x1b
	del       = 0x7f

	// Function and cursor keys live in the private use area.
	keyFn    = 0xF000
	keyFnEnd = 0xF8FF
)

func translateRune(r rune) ui.Event {
	switch r {
	case '\n', '\r':
		return ui.KeyEvent{Key: ui.KeyEnter}
	case '\t':
		return ui.KeyEvent{Key: ui.KeyTab}
	case escape:
		return ui.KeyEvent{Key: ui.KeyEscape}
	case backspace, del:
		return ui.KeyEvent{Key: ui.KeyBackspace}
	case ctrlC:
		return ui.QuitEvent{}
	case draw.KeyUp:
		return ui.KeyEvent{Key: ui.KeyUp}
	case draw.KeyDown:
		return ui.KeyEvent{Key: ui.KeyDown}
	case draw.KeyLeft:
		return ui.KeyEvent{Key: ui.KeyLeft}
	case draw.KeyRight:
		return ui.KeyEvent{Key: ui.KeyRight}
	}
	if r < ' ' || (r >= keyFn && r <= keyFnEnd) {
		return nil
	}
	return ui.KeyEvent{Key: ui.KeyRune, Rune: r}
}
